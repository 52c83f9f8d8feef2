package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minderapp/minder/internal/logger"
	"github.com/minderapp/minder/internal/model"
	"github.com/minderapp/minder/internal/store"
)

// Login and registration failure reasons. These are user-facing outcomes,
// not system faults; they are never logged as errors.
var (
	ErrUnknownUsername  = errors.New("username not found")
	ErrWrongPassword    = errors.New("password incorrect")
	ErrInvalidUsername  = errors.New("username does not meet requirements")
	ErrInvalidPassword  = errors.New("password does not meet requirements")
	ErrInvalidEmail     = errors.New("email address is invalid")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrCommonPassword   = errors.New("password is too common")
)

// Verifier checks credentials against the users store and records failed
// attempts in the sign-in log
type Verifier struct {
	stores *store.Manager
	common *PasswordSet
}

// NewVerifier creates a credential verifier backed by the given stores
func NewVerifier(stores *store.Manager, common *PasswordSet) *Verifier {
	return &Verifier{stores: stores, common: common}
}

// VerifyLogin checks a username/password pair. On success it returns the
// matching user record for session issuance. On failure it returns
// ErrUnknownUsername or ErrWrongPassword and appends one event to the
// failed sign-in log, pruning entries over a week old first.
func (v *Verifier) VerifyLogin(username, password, origin string) (model.User, error) {
	user, found := v.lookup(username)
	if !found {
		v.recordFailure(origin, "unknown username")
		return model.User{}, ErrUnknownUsername
	}

	if !CheckPassword(user.ID, password, user.PasswordHash) {
		v.recordFailure(origin, "incorrect password")
		return model.User{}, ErrWrongPassword
	}

	return user, nil
}

// Register validates registration details and creates the user record.
// Checks run in a fixed order and the first failure wins: username,
// password, email, username availability. A blank display name becomes
// "Anonymous".
func (v *Verifier) Register(username, password, name, email string) (model.User, error) {
	if !ValidUsername(username) {
		return model.User{}, ErrInvalidUsername
	}
	if !ValidPassword(password) {
		return model.User{}, ErrInvalidPassword
	}
	if !ValidEmail(email) {
		return model.User{}, ErrInvalidEmail
	}
	if _, taken := v.lookup(username); taken {
		return model.User{}, ErrUsernameTaken
	}

	userID := uuid.NewString()
	hash, err := HashPassword(userID, password)
	if err != nil {
		return model.User{}, err
	}

	if strings.TrimSpace(name) == "" {
		name = "Anonymous"
	}

	user := model.User{
		ID:           userID,
		Username:     username,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	err = v.stores.Exec(store.UsersStore, "Register new user", store.QueryCreateUser,
		user.ID, user.Username, user.Name, user.Email, user.PasswordHash)
	if err != nil {
		return model.User{}, err
	}

	logger.Info("User registered", logger.F("username", username))
	return user, nil
}

// UpdatePassword replaces a user's password after checking that the repeat
// matches, the policy holds and the password is not on the common list
func (v *Verifier) UpdatePassword(userID, password, repeated string) error {
	if password != repeated {
		return ErrPasswordMismatch
	}
	if !ValidPassword(password) {
		return ErrInvalidPassword
	}
	if v.common.Contains(password) {
		return ErrCommonPassword
	}

	hash, err := HashPassword(userID, password)
	if err != nil {
		return err
	}

	return v.stores.Exec(store.UsersStore, "Update user password hash",
		store.QueryUpdatePasswordHash, hash, userID)
}

// Lookup fetches a user record by username
func (v *Verifier) Lookup(username string) (model.User, bool) {
	return v.lookup(username)
}

func (v *Verifier) lookup(username string) (model.User, bool) {
	rows, err := v.stores.Query(store.UsersStore, "Get user record by username",
		store.QueryUserByUsername, username)
	if err != nil {
		return model.User{}, false
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			logger.Error("Failed to read user record", logger.F("error", err))
		}
		return model.User{}, false
	}

	var user model.User
	if err := rows.Scan(&user.ID, &user.Username, &user.Name, &user.Email, &user.PasswordHash); err != nil {
		logger.Error("Failed to scan user record", logger.F("error", err))
		return model.User{}, false
	}
	return user, true
}

// FailedLogins returns the logged failed sign-in events, oldest first
func (v *Verifier) FailedLogins() ([]model.FailedLogin, error) {
	rows, err := v.stores.Query(store.FailedSigninLog, "Get failed sign-in events",
		store.QueryFailedLogins)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.FailedLogin{}
	for rows.Next() {
		var ev model.FailedLogin
		if err := rows.Scan(&ev.ID, &ev.Timestamp, &ev.Origin); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// recordFailure prunes stale events and appends one failed sign-in event
func (v *Verifier) recordFailure(origin, reason string) {
	v.stores.Exec(store.FailedSigninLog, "Delete old entries, failed sign-in log",
		store.QueryPruneFailedLogins)
	v.stores.Exec(store.FailedSigninLog, "Record failed login attempt - "+reason,
		store.QueryRecordFailedLogin,
		uuid.NewString(), time.Now().Format(model.TimeFormat), origin)
}
