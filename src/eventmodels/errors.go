package eventmodels

import "fmt"

var ErrTickerNotFound = fmt.Errorf("ticker not found")
var ErrMissingRefreshToken = fmt.Errorf("token response did not contain a refresh token")
var ErrInvalidScreenParams = fmt.Errorf("invalid screen parameters")
var ErrUnknownDataProvider = fmt.Errorf("unknown data provider")
var ErrAuthorizationCodeNotFound = fmt.Errorf("authorization code not found in redirect url")
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")
