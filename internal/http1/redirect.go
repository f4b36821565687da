package http1

import (
	"github.com/pimalaya/io-http/internal/netio"
	"go.uber.org/zap"
)

// RedirectResult is the terminal value of a RedirectFollower.Resume
// round that is not itself a suspension or a failure. Exactly one of
// Result or Reset is set:
//   - Result is set once a non-3xx response is reached (the "Ok" case).
//   - Reset is set when the driver must tear down the current transport
//     and open a fresh one against Reset before resuming — this is
//     informational, not an error (§4.D step 6).
type RedirectResult struct {
	Result *SendResult
	Reset  *URI
}

// RedirectFollower wraps a SendExchange and transparently follows 3xx
// responses carrying a Location header (§4.D), rebuilding the inner
// exchange on each hop. Ported from the original source's
// follow-redirects coroutine.
type RedirectFollower struct {
	exchange      *SendExchange
	req           *Request
	hopsRemaining int
	awaitingReset bool
}

// maxRedirectHops is the default remaining-hops budget (§4.D step 5).
const maxRedirectHops = 4

// NewRedirectFollower builds a RedirectFollower that starts by sending
// req.
func NewRedirectFollower(req *Request) *RedirectFollower {
	return &RedirectFollower{
		exchange:      NewSendExchange(req),
		req:           req,
		hopsRemaining: maxRedirectHops,
	}
}

// Resume advances the follower. See the IoIntent protocol contract
// (§4.A / §6.1). After a round returns a non-nil RedirectResult.Reset,
// the driver must close the current transport, open a new one to
// Reset, and then call Resume(nil) again to continue — the follower
// has already rebuilt its inner exchange against the rewritten request
// and is waiting only on that out-of-band transport swap.
func (f *RedirectFollower) Resume(completed *netio.IoIntent) (*RedirectResult, *netio.IoIntent, error) {
	for {
		if f.awaitingReset {
			f.awaitingReset = false
			completed = nil
		}

		result, intent, err := f.exchange.Resume(completed)
		completed = nil
		if err != nil {
			return nil, nil, err
		}
		if intent != nil {
			return nil, intent, nil
		}

		if !result.Response.IsRedirection() {
			return &RedirectResult{Result: result}, nil, nil
		}

		location := result.Response.Header.Get("Location")
		if location == "" {
			return nil, nil, ErrMissingLocationHeader
		}
		if !isASCII(location) {
			return nil, nil, &InvalidLocationHeaderError{Value: location, Err: errNonASCIILocation}
		}

		locationURI, perr := ParseURI(location)
		if perr != nil {
			return nil, nil, &InvalidLocationURIError{Value: location, Err: perr}
		}

		newURI := MergeRedirect(f.req.URI, locationURI)

		if f.hopsRemaining <= 0 {
			return nil, nil, ErrTooManyRedirects
		}
		f.hopsRemaining--

		reuse := result.KeepAlive && SameOrigin(f.req.URI, newURI)
		log.Debug("following redirect",
			zap.String("correlation_id", f.exchange.CorrelationID().String()),
			zap.Int("status", result.Response.StatusCode),
			zap.String("location", location),
			zap.Bool("reuse_transport", reuse),
			zap.Int("hops_remaining", f.hopsRemaining),
		)
		correlationID := f.exchange.CorrelationID()

		// On reuse the transport stays open, so any bytes the previous
		// exchange already read past its own response body belong to
		// the next response and must carry forward. On a Reset the old
		// transport is abandoned entirely, so those bytes are stale and
		// are dropped with it.
		var seed []byte
		if reuse {
			seed = f.exchange.Leftover()
		}

		f.req = f.req.WithURI(newURI)
		f.exchange = newSendExchangeWithCorrelation(f.req, DefaultHeaderParseLimits(), correlationID, seed)

		if reuse {
			continue
		}

		f.awaitingReset = true
		return &RedirectResult{Reset: newURI}, nil, nil
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}
