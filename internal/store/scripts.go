package store

// SQL scripts for the named stores and the per-user reminder stores.
// Due dates and event timestamps are stored in the canonical
// YYYY-MM-DD HH:MM:SS local-time format, which julianday() parses directly.

const initUsersStore = `
CREATE TABLE IF NOT EXISTS users (
    user_id TEXT PRIMARY KEY,
    username TEXT,
    name TEXT,
    email TEXT,
    password_hash TEXT
);
`

// QueryCreateUser inserts a user record
const QueryCreateUser = `
INSERT INTO users (user_id, username, name, email, password_hash)
VALUES (?, ?, ?, ?, ?);`

// QueryUserByUsername fetches a user record by username; also used to check
// whether a username is taken
const QueryUserByUsername = `
SELECT user_id, username, name, email, password_hash FROM users
WHERE username = ?;`

// QueryUpdatePasswordHash replaces a user's password hash
const QueryUpdatePasswordHash = `
UPDATE users SET password_hash = ? WHERE user_id = ?;`

const initFailedSigninLog = `
CREATE TABLE IF NOT EXISTS failed_logins (
    event_id TEXT PRIMARY KEY,
    event_datetime TEXT,
    event_origin TEXT
);
`

// QueryRecordFailedLogin appends one failed sign-in event
const QueryRecordFailedLogin = `
INSERT INTO failed_logins (event_id, event_datetime, event_origin)
VALUES (?, ?, ?);`

// QueryPruneFailedLogins drops events over a week old so the log stays
// bounded. Run before every insert.
const QueryPruneFailedLogins = `
DELETE FROM failed_logins
WHERE (JULIANDAY('now', 'localtime') - JULIANDAY(event_datetime)) > 7;`

// QueryFailedLogins fetches the logged events, oldest first
const QueryFailedLogins = `
SELECT event_id, event_datetime, event_origin FROM failed_logins
ORDER BY event_datetime;`

const initReminderStore = `
CREATE TABLE IF NOT EXISTS reminders (
    reminder_id TEXT PRIMARY KEY,
    due_date TEXT,
    title TEXT,
    tags TEXT,
    description TEXT
);
`

// QueryInsertReminder adds one reminder to a user store
const QueryInsertReminder = `
INSERT INTO reminders (reminder_id, due_date, title, tags, description)
VALUES (?, ?, ?, ?, ?);`

// QueryRemindersWithin selects reminders due strictly in the future and
// within the given number of hours from now
const QueryRemindersWithin = `
SELECT reminder_id, due_date, title, tags, description
FROM reminders
WHERE ((JULIANDAY(due_date) - JULIANDAY('now', 'localtime')) * 24 <= ? AND
    (JULIANDAY(due_date) - JULIANDAY('now', 'localtime')) * 24 > 0);`

// QueryPastReminders selects reminders whose due date has passed. Anything
// over 72 hours old has already been removed by the expiry prune.
const QueryPastReminders = `
SELECT reminder_id, due_date, title, tags, description
FROM reminders
WHERE (JULIANDAY('now', 'localtime') - JULIANDAY(due_date)) * 24 > 0;`

// pruneExpiredReminders removes reminders more than 3 days past due. Runs
// ahead of every query against a user store.
const pruneExpiredReminders = `
DELETE FROM reminders
WHERE (JULIANDAY('now', 'localtime') - JULIANDAY(due_date)) > 3;`
