package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Controllers translate
// them into HTTP responses; none of them should crash the process.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCategoryNotFound = errors.New("category not found")

	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyBlocked   = errors.New("user is already blocked")
	ErrNotBlocked       = errors.New("user is not blocked")
	ErrSelfBlock        = errors.New("cannot block yourself")
	ErrAlreadyViewed    = errors.New("profile already viewed")

	ErrForbidden        = errors.New("not allowed to modify this resource")
	ErrAccountSuspended = errors.New("account is suspended")
	ErrEmailTaken       = errors.New("email already taken")
)

// ConsistencyError marks a multi-statement write that failed partway.
// It is never surfaced to callers as a validation failure: handlers map
// it to a 500 and the reconciler repairs any drift on its next pass.
type ConsistencyError struct {
	Op  string
	Err error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency failure during %s: %v", e.Op, e.Err)
}

func (e *ConsistencyError) Unwrap() error { return e.Err }

func consistency(op string, err error) error {
	return &ConsistencyError{Op: op, Err: err}
}
