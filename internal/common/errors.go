package common

import "errors"

// Session errors.
var ErrNoRefreshToken = errors.New("no refresh token")
