package responder

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"dhlink/internal/crypto"
	"dhlink/internal/domain"
	"dhlink/internal/relay"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// Handler returns the HTTP API described in package relay, wrapped in an
// access log when logging is enabled.
func (r *Responder) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /handshake/params", r.handleParams)
	mux.HandleFunc("POST /handshake/exchange", r.handleExchange)
	mux.HandleFunc("DELETE /handshake", r.handleForget)
	mux.HandleFunc("POST /messages", r.handleSubmit)
	mux.HandleFunc("GET /messages", r.handleFetch)
	mux.HandleFunc("POST /messages/ack", r.handleAck)
	mux.HandleFunc("POST /messages/{id}/decrypt", r.handleReveal)
	if r.log == nil {
		return mux
	}
	return r.accessLog(mux)
}

func (r *Responder) handleParams(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, relay.NewParamsResponse(r.params))
}

func (r *Responder) handleExchange(w http.ResponseWriter, req *http.Request) {
	var in relay.ExchangeMessage
	if !readJSON(w, req, &in) {
		return
	}
	clientPublic, err := in.Value()
	if err != nil {
		writeError(w, err)
		return
	}
	public, err := r.Exchange(userOf(req), clientPublic)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, relay.NewExchangeMessage(public))
}

func (r *Responder) handleForget(w http.ResponseWriter, req *http.Request) {
	user := userOf(req)
	if user == "" {
		writeError(w, ErrMissingUser)
		return
	}
	r.Forget(user)
	w.WriteHeader(http.StatusNoContent)
}

func (r *Responder) handleSubmit(w http.ResponseWriter, req *http.Request) {
	var env domain.EncryptedEnvelope
	if !readJSON(w, req, &env) {
		return
	}
	id, err := r.Submit(userOf(req), env)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, relay.SendResponse{MessageID: id})
}

func (r *Responder) handleFetch(w http.ResponseWriter, req *http.Request) {
	user := userOf(req)
	if user == "" {
		writeError(w, ErrMissingUser)
		return
	}
	limit := 0
	if s := req.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, relay.ErrMalformed)
			return
		}
		limit = n
	}
	msgs := r.Fetch(user, limit)
	out := make([]relay.MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, relay.NewMessageDTO(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (r *Responder) handleAck(w http.ResponseWriter, req *http.Request) {
	user := userOf(req)
	if user == "" {
		writeError(w, ErrMissingUser)
		return
	}
	var in relay.AckRequest
	if !readJSON(w, req, &in) {
		return
	}
	r.Ack(user, in.Count)
	w.WriteHeader(http.StatusNoContent)
}

func (r *Responder) handleReveal(w http.ResponseWriter, req *http.Request) {
	user := userOf(req)
	if user == "" {
		writeError(w, ErrMissingUser)
		return
	}
	msg, plain, err := r.Reveal(user, domain.MessageID(req.PathValue("id")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, relay.DecryptResponse{
		MessageID:        msg.ID,
		From:             msg.From,
		DecryptedContent: string(plain),
		Timestamp:        msg.Timestamp,
	})
}

func userOf(req *http.Request) domain.Username {
	return domain.Username(req.Header.Get(relay.UserHeader))
}

// readJSON decodes the body into v, writing a 400 on failure.
func readJSON(w http.ResponseWriter, req *http.Request, v any) bool {
	defer req.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, relay.ErrorResponse{Detail: "invalid JSON body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps sentinel errors to statuses. Details never carry key
// material; they are the sentinel texts.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	detail := "internal error"
	switch {
	case errors.Is(err, ErrMissingUser):
		status, detail = http.StatusUnauthorized, ErrMissingUser.Error()
	case errors.Is(err, relay.ErrMalformed), errors.Is(err, crypto.ErrInvalidEncoding):
		status, detail = http.StatusBadRequest, relay.ErrMalformed.Error()
	case errors.Is(err, crypto.ErrInvalidPeerKey):
		status, detail = http.StatusBadRequest, crypto.ErrInvalidPeerKey.Error()
	case errors.Is(err, ErrNoSession):
		status, detail = http.StatusBadRequest, ErrNoSession.Error()
	case errors.Is(err, ErrUnknownMessage):
		status, detail = http.StatusNotFound, ErrUnknownMessage.Error()
	case errors.Is(err, crypto.ErrDecryptionFailed):
		status, detail = http.StatusUnprocessableEntity, crypto.ErrDecryptionFailed.Error()
	}
	writeJSON(w, status, relay.ErrorResponse{Detail: detail})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// accessLog records method, path, user, status, bytes and duration.
func (r *Responder) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, req)
		r.log.Infof("%s %s user=%q remote=%s status=%d bytes=%d dur=%s",
			req.Method, req.URL.Path, userOf(req), req.RemoteAddr,
			rec.status, rec.bytes, time.Since(start))
	})
}
