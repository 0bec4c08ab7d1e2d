package fetcher

import "errors"

var (
	// ErrPageUnreachable is returned when a page cannot be rendered for
	// any reason (DNS, TLS, timeout, navigation failure).
	ErrPageUnreachable = errors.New("page unreachable")

	// ErrUnexpectedStatus is returned when a download answers with a
	// non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrContentTypeMismatch is returned when a download's Content-Type
	// does not belong to the document family its URL promised.
	ErrContentTypeMismatch = errors.New("content type mismatch")

	// ErrDownloadTooLarge is returned when a download exceeds the
	// configured size limit.
	ErrDownloadTooLarge = errors.New("download exceeds size limit")

	// ErrBrowserClosed is returned when a fetch is attempted after Close.
	ErrBrowserClosed = errors.New("browser closed")
)
