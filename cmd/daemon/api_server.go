package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	maplegw "github.com/maplegw/go-maplegw"
	"github.com/maplegw/go-maplegw/gateway"
	"github.com/maplegw/go-maplegw/identity"
	"github.com/maplegw/go-maplegw/normalize"
	"github.com/maplegw/go-maplegw/nxopen"
	"github.com/rs/cors"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	timeout = 10 * time.Second

	tokenHeader = "uuid"
)

var (
	ErrBadRequest       = errors.New("bad request")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

type ApiRequestType string

const (
	ApiRequestTypeHealth    ApiRequestType = "health"
	ApiRequestTypeOcid      ApiRequestType = "ocid"
	ApiRequestTypeForget    ApiRequestType = "forget"
	ApiRequestTypeCharacter ApiRequestType = "character"
)

type ApiEventType string

const (
	ApiEventTypeIdentityResolved  ApiEventType = "identity_resolved"
	ApiEventTypeIdentityForgotten ApiEventType = "identity_forgotten"
	ApiEventTypeFetchFailed       ApiEventType = "fetch_failed"
)

type ApiRequest struct {
	Type  ApiRequestType
	Token string
	Data  any

	ctx  context.Context
	resp chan apiResponse
}

func (r *ApiRequest) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}

	return r.ctx
}

func (r *ApiRequest) Reply(data any, err error) {
	r.resp <- apiResponse{data, err}
}

type ApiRequestDataOcid struct {
	NickName string `json:"nick_name"`
}

type ApiRequestDataCharacter struct {
	Category maplegw.Category `json:"-"`
	NickName string           `json:"nick_name"`
	Level    *int             `json:"level"`
}

type apiResponse struct {
	data any
	err  error
}

type ApiResponseOcid struct {
	Ocid string `json:"ocid"`
}

type ApiResponseHealth struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Identities int    `json:"identities"`
}

type ApiEvent struct {
	Type ApiEventType `json:"type"`
	Data any          `json:"data"`
}

type ApiEventDataIdentity struct {
	Token string `json:"token"`
}

type ApiEventDataFetchFailed struct {
	Token    string `json:"token"`
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

type ApiServer struct {
	log maplegw.Logger

	allowOrigin string
	certFile    string
	keyFile     string

	close    atomic.Bool
	listener net.Listener

	requests chan ApiRequest

	clients     []*websocket.Conn
	clientsLock sync.RWMutex
}

func NewApiServer(log maplegw.Logger, address string, port int, allowOrigin string, certFile string, keyFile string) (_ *ApiServer, err error) {
	s := &ApiServer{log: log, allowOrigin: allowOrigin, certFile: certFile, keyFile: keyFile}
	s.requests = make(chan ApiRequest)

	s.listener, err = net.Listen("tcp", net.JoinHostPort(address, fmt.Sprint(port)))
	if err != nil {
		return nil, fmt.Errorf("failed starting api listener: %w", err)
	}

	s.log.Infof("api server listening on %s", s.listener.Addr())

	go s.serve()
	return s, nil
}

func (s *ApiServer) Addr() net.Addr {
	return s.listener.Addr()
}

type apiFailure struct {
	status int
	reason string
	code   string
}

// classifyError maps an error to a status code, a short reason for the
// response body and a reason code for events. Upstream error bodies and
// identities never end up in either.
func classifyError(err error) apiFailure {
	switch {
	case errors.Is(err, identity.ErrMissingToken):
		return apiFailure{http.StatusBadRequest, "Missing or invalid uuid header", "missing_token"}
	case errors.Is(err, ErrMethodNotAllowed):
		return apiFailure{http.StatusMethodNotAllowed, "Method not allowed", "method_not_allowed"}
	case errors.Is(err, ErrBadRequest), errors.Is(err, identity.ErrMissingName), errors.Is(err, gateway.ErrMissingParameter):
		return apiFailure{http.StatusBadRequest, "Invalid request body", "invalid_request"}
	case errors.Is(err, gateway.ErrUnknownCategory):
		return apiFailure{http.StatusNotFound, "Unknown category", "unknown_category"}
	case errors.Is(err, gateway.ErrIdentityUnresolved):
		return apiFailure{http.StatusBadRequest, "Unknown uuid, resolve OCID first", "unknown_uuid"}
	case errors.Is(err, nxopen.ErrUpstreamUnreachable):
		return apiFailure{http.StatusBadGateway, "Upstream unavailable", "unreachable"}
	case errors.Is(err, nxopen.ErrMalformedPayload), errors.Is(err, normalize.ErrDecodeFailed):
		return apiFailure{http.StatusBadGateway, "Upstream unavailable", "malformed"}
	case errors.Is(err, identity.ErrResolutionFailed):
		return apiFailure{http.StatusBadRequest, "Failed to fetch OCID", "unresolved"}
	case errors.Is(err, nxopen.ErrUpstreamRejected):
		return apiFailure{http.StatusBadRequest, "Failed to fetch character data", "rejected"}
	default:
		return apiFailure{http.StatusInternalServerError, "Internal error", "internal"}
	}
}

func (s *ApiServer) writeError(w http.ResponseWriter, req *ApiRequest, err error) {
	f := classifyError(err)
	switch f.status {
	case http.StatusBadGateway:
		s.log.WithError(err).Warnf("upstream unavailable for %s request", req.Type)
	case http.StatusInternalServerError:
		s.log.WithError(err).Errorf("failed handling request %s", req.Type)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.reason)
}

func (s *ApiServer) handleRequest(req ApiRequest, w http.ResponseWriter) {
	req.resp = make(chan apiResponse, 1)

	select {
	case s.requests <- req:
	case <-req.Context().Done():
		return
	}

	var resp apiResponse
	select {
	case resp = <-req.resp:
	case <-req.Context().Done():
		return
	}

	if resp.err != nil {
		s.writeError(w, &req, resp.err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if resp.data == nil {
		_, _ = w.Write([]byte("{}"))
		return
	}

	_ = json.NewEncoder(w).Encode(resp.data)
}

func readToken(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(tokenHeader))
}

// decodeBody decodes an optional JSON body, an empty body leaves data untouched.
func decodeBody(r *http.Request, data any) error {
	if err := json.NewDecoder(r.Body).Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	return nil
}

func (s *ApiServer) handler() http.Handler {
	m := http.NewServeMux()
	m.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	})
	m.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		s.handleRequest(ApiRequest{Type: ApiRequestTypeHealth, ctx: r.Context()}, w)
	})
	m.HandleFunc("/ocid", func(w http.ResponseWriter, r *http.Request) {
		req := ApiRequest{Token: readToken(r), ctx: r.Context()}
		if len(req.Token) == 0 {
			s.writeError(w, &req, identity.ErrMissingToken)
			return
		}

		switch r.Method {
		case "POST":
			var data ApiRequestDataOcid
			if err := decodeBody(r, &data); err != nil {
				s.writeError(w, &req, err)
				return
			}

			data.NickName = strings.TrimSpace(data.NickName)
			if len(data.NickName) == 0 {
				s.writeError(w, &req, ErrBadRequest)
				return
			}

			req.Type, req.Data = ApiRequestTypeOcid, data
		case "DELETE":
			req.Type = ApiRequestTypeForget
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		s.handleRequest(req, w)
	})
	m.HandleFunc("/character/", func(w http.ResponseWriter, r *http.Request) {
		req := ApiRequest{Type: ApiRequestTypeCharacter, Token: readToken(r), ctx: r.Context()}
		if r.Method != "GET" && r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		if len(req.Token) == 0 {
			s.writeError(w, &req, identity.ErrMissingToken)
			return
		}

		category, err := maplegw.ParseCategory(strings.TrimPrefix(r.URL.Path, "/character/"))
		if err != nil || !category.IsCharacter() {
			s.writeError(w, &req, gateway.ErrUnknownCategory)
			return
		}

		data := ApiRequestDataCharacter{Category: category}
		if err := decodeBody(r, &data); err != nil {
			s.writeError(w, &req, err)
			return
		}

		data.NickName = strings.TrimSpace(data.NickName)
		req.Data = data
		s.handleRequest(req, w)
	})
	m.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		opts := &websocket.AcceptOptions{}
		if len(s.allowOrigin) > 0 {
			allow := s.allowOrigin
			allow = strings.TrimPrefix(allow, "http://")
			allow = strings.TrimPrefix(allow, "https://")
			allow = strings.TrimSuffix(allow, "/")
			opts.OriginPatterns = []string{allow}
		}

		c, err := websocket.Accept(w, r, opts)
		if err != nil {
			s.log.WithError(err).Errorf("failed accepting websocket connection")
			return
		}

		s.clientsLock.Lock()
		s.clients = append(s.clients, c)
		s.clientsLock.Unlock()

		s.log.Debugf("new websocket client")

		for {
			_, _, err := c.Read(context.Background())
			if s.close.Load() {
				return
			} else if err != nil {
				s.log.WithError(err).Debugf("websocket connection closed")

				s.clientsLock.Lock()
				for i, cc := range s.clients {
					if cc == c {
						s.clients = append(s.clients[:i], s.clients[i+1:]...)
						break
					}
				}
				s.clientsLock.Unlock()
				return
			}
		}
	})

	c := cors.New(cors.Options{
		AllowedOrigins:      []string{s.allowOrigin},
		AllowedMethods:      []string{"GET", "POST", "DELETE"},
		AllowedHeaders:      []string{"Content-Type", tokenHeader},
		AllowPrivateNetwork: true,
		AllowCredentials:    true,
	})

	return c.Handler(m)
}

func (s *ApiServer) serve() {
	var err error
	if len(s.certFile) > 0 && len(s.keyFile) > 0 {
		err = http.ServeTLS(s.listener, s.handler(), s.certFile, s.keyFile)
	} else {
		err = http.Serve(s.listener, s.handler())
	}

	if s.close.Load() {
		return
	} else if err != nil {
		s.log.WithError(err).Errorf("failed serving api")
	}
}

func (s *ApiServer) Emit(ev *ApiEvent) {
	s.clientsLock.RLock()
	defer s.clientsLock.RUnlock()

	s.log.Tracef("emitting websocket event: %s", ev.Type)

	for _, client := range s.clients {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err := wsjson.Write(ctx, client, ev)
		cancel()
		if err != nil {
			// purposely do not propagate this to the caller
			s.log.WithError(err).Warnf("failed communicating with websocket client")
		}
	}
}

func (s *ApiServer) Receive() <-chan ApiRequest {
	return s.requests
}

func (s *ApiServer) Close() {
	s.close.Store(true)

	s.clientsLock.RLock()
	for _, client := range s.clients {
		_ = client.Close(websocket.StatusGoingAway, "")
	}
	s.clientsLock.RUnlock()

	_ = s.listener.Close()
}
