package twilio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	twilioClient "github.com/twilio/twilio-go/client"
)

// SignatureHeader carries Twilio's request signature.
const SignatureHeader = "X-Twilio-Signature"

var (
	ErrMissingSignature = errors.New("missing " + SignatureHeader)
	ErrInvalidSignature = errors.New("invalid " + SignatureHeader)
	// ErrUnsignedContent is returned for bodies Twilio never signs. With
	// verification on, JSON callbacks cannot be authenticated and are refused.
	ErrUnsignedContent = errors.New("only signed form callbacks are accepted")
)

// SignatureVerifier checks X-Twilio-Signature on form-encoded callbacks.
// Requests with any other content type are rejected.
type SignatureVerifier struct {
	validator twilioClient.RequestValidator
	origin    string
	maxBody   int64
}

// NewSignatureVerifier creates a verifier for callbacks posted to
// callbackURL. Twilio signs the URL it requested, so the scheme and host
// are taken from callbackURL rather than from the inbound request, which may
// have passed through a proxy.
func NewSignatureVerifier(authToken, callbackURL string, maxBody int64) (*SignatureVerifier, error) {
	u, err := url.Parse(callbackURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("callback url %q must be absolute", callbackURL)
	}
	return &SignatureVerifier{
		validator: twilioClient.NewRequestValidator(authToken),
		origin:    u.Scheme + "://" + u.Host,
		maxBody:   maxBody,
	}, nil
}

// VerifyRequest validates the signature of a form callback. The body is read
// and replaced so the handler can parse it again.
func (v *SignatureVerifier) VerifyRequest(r *http.Request) error {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "application/x-www-form-urlencoded" {
		return ErrUnsignedContent
	}

	sig := r.Header.Get(SignatureHeader)
	if sig == "" {
		return ErrMissingSignature
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, v.maxBody))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	form, err := url.ParseQuery(string(body))
	if err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	params := make(map[string]string, len(form))
	for k, vals := range form {
		if len(vals) > 0 {
			params[k] = vals[0]
		}
	}

	if !v.validator.Validate(v.origin+r.URL.RequestURI(), params, sig) {
		return ErrInvalidSignature
	}
	return nil
}
