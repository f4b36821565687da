package http1

// Response is a thin, by-value carrier for a received HTTP/1.x
// response (§3, §4.E). Headers are preserved in the order they were
// received; Body is fully materialized (no streaming).
type Response struct {
	Version    Version
	StatusCode int
	Header     Header
	Body       []byte
}

// IsRedirection reports whether StatusCode is in the 3xx range, the
// condition RedirectFollower checks on every hop (§4.D step 2).
func (r *Response) IsRedirection() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// ResponseBuilder accumulates version/status/headers while a
// SendExchange is still receiving the body (§3's ExchangeState carries
// one of these across the ReceivingChunked/ReceivingLengthed/
// ReceivingToEnd states), then is finalized into a Response once the
// body sub-machine terminates.
type ResponseBuilder struct {
	Version    Version
	StatusCode int
	Header     Header
}

// Build finalizes the response with the given body.
func (b ResponseBuilder) Build(body []byte) *Response {
	return &Response{
		Version:    b.Version,
		StatusCode: b.StatusCode,
		Header:     b.Header,
		Body:       body,
	}
}
