package adminapi

import "fmt"

// Error is the single canonical error shape returned over the wire, mirroring
// the teacher's apitypes.ApiError problem-JSON body.
type Error struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Title
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

func errBadRequest(detail string) *Error { return &Error{Status: 400, Title: "Bad Request", Detail: detail} }
func errNotFound(detail string) *Error   { return &Error{Status: 404, Title: "Not Found", Detail: detail} }
func errInternal(detail string) *Error   { return &Error{Status: 500, Title: "Internal Server Error", Detail: detail} }

// wrapError normalizes any error into *Error.
func wrapError(err error) *Error {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*Error); ok {
		return ae
	}
	return errInternal(err.Error())
}
