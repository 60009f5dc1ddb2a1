// Package serve exposes the session operations over an NDJSON
// request/response loop, for embedding the core behind another process
// (an editor front end, a test harness) without linking it.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/lexgrep/lexgrep/pkg/editor"
	"github.com/lexgrep/lexgrep/pkg/session"
	"github.com/lexgrep/lexgrep/pkg/share"
	"github.com/lexgrep/lexgrep/pkg/types"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server answers session requests over NDJSON.
type Server struct {
	codec   share.Codec
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a server reading requests from in and writing responses
// to out.
func NewServer(codec share.Codec, in io.Reader, out io.Writer) *Server {
	return &Server{
		codec:   codec,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop and blocks until the input closes, a
// "close" request arrives, or the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.sendReady()

	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server
// should exit.
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case "run":
		s.handleRun(req.Payload)
	case "encode":
		s.handleEncode(req.Payload)
	case "decode":
		s.handleDecode(req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

// resolve turns a payload into a session Config.
func (s *Server) resolve(p SessionPayload) (session.Config, error) {
	if p.Token != "" {
		return s.codec.Decode(p.Token), nil
	}
	return editor.FromParts(p.Subject, p.Language, p.Rules)
}

func (s *Server) handleRun(payload json.RawMessage) {
	var p SessionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("run", err.Error())
		return
	}
	cfg, err := s.resolve(p)
	if err != nil {
		s.sendError("run", err.Error())
		return
	}

	matches := make([]types.Match, 0)
	if err := cfg.Run(func(m types.Match) { matches = append(matches, m) }); err != nil {
		s.sendError("run", err.Error())
		return
	}

	s.send("run", RunData{Matches: matches, Total: len(matches)})
}

func (s *Server) handleEncode(payload json.RawMessage) {
	var p SessionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("encode", err.Error())
		return
	}
	cfg, err := s.resolve(p)
	if err != nil {
		s.sendError("encode", err.Error())
		return
	}

	token, err := s.codec.Encode(cfg)
	if err != nil {
		s.sendError("encode", err.Error())
		return
	}
	s.send("encode", EncodeData{Token: token, Path: s.codec.PublicPrefix + token})
}

func (s *Server) handleDecode(payload json.RawMessage) {
	var p SessionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("decode", err.Error())
		return
	}

	cfg := s.codec.Decode(p.Token)
	rules, subject, display, err := editor.ToParts(cfg)
	if err != nil {
		s.sendError("decode", err.Error())
		return
	}
	s.send("decode", DecodeData{Subject: subject, Language: display, Rules: rules})
}

func (s *Server) sendReady() {
	data, _ := json.Marshal(ReadyData{Version: Version})
	s.encoder.Encode(Response{Success: true, Type: "ready", Data: data})
}

func (s *Server) send(typ string, v interface{}) {
	data, _ := json.Marshal(v)
	s.encoder.Encode(Response{Success: true, Type: typ, Data: data})
}

func (s *Server) sendError(typ, msg string) {
	s.encoder.Encode(Response{Success: false, Type: typ, Error: msg})
}
