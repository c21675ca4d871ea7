package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/text/language"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/numeric"
)

// request is a client command. Only the fields of the named op are read.
//
//	{"op":"configure","width":800,"height":600}
//	{"op":"bounds","xmin":-2,"xmax":1,"ymin":-1,"ymax":1}
//	{"op":"backend","mode":"exact"}
//	{"op":"zoom","factor":2}
//	{"op":"pan","x":400,"y":300}
//	{"op":"precision","bits":256}
//	{"op":"render","iter":500,"threads":8,"thumb":128}
//	{"op":"status"}
type request struct {
	Op      string  `json:"op"`
	Width   int     `json:"width,omitempty"`
	Height  int     `json:"height,omitempty"`
	XMin    float64 `json:"xmin,omitempty"`
	XMax    float64 `json:"xmax,omitempty"`
	YMin    float64 `json:"ymin,omitempty"`
	YMax    float64 `json:"ymax,omitempty"`
	Mode    string  `json:"mode,omitempty"`
	Factor  float64 `json:"factor,omitempty"`
	X       int     `json:"x,omitempty"`
	Y       int     `json:"y,omitempty"`
	Bits    uint    `json:"bits,omitempty"`
	Iter    int     `json:"iter,omitempty"`
	Threads int     `json:"threads,omitempty"`
	Thumb   int     `json:"thumb,omitempty"`
}

// frameInfo describes the binary message that follows a render status.
type frameInfo struct {
	Format string `json:"format"` // "rgb" or "rgba"
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type renderStats struct {
	Backend    string  `json:"backend"`
	Iterations int     `json:"iterations"`
	Workers    int     `json:"workers"`
	Tiles      int     `json:"tiles"`
	Millis     float64 `json:"ms"`
}

// status is sent after every request.
type status struct {
	Op            string       `json:"op"`
	Error         string       `json:"error,omitempty"`
	Backend       string       `json:"backend"`
	Precision     uint         `json:"precision"`
	Width         int          `json:"width"`
	Height        int          `json:"height"`
	Bounds        [4]float64   `json:"bounds"`
	Preview       [4]float64   `json:"preview"`
	Zoom          string       `json:"zoom"`
	Magnification string       `json:"magnification"`
	Stats         *renderStats `json:"stats,omitempty"`
	Frame         *frameInfo   `json:"frame,omitempty"`
}

var errUnknownOp = errors.New("unknown op")

// websocketHandler accepts a websocket and runs a session on it until the
// client goes away or ctx is canceled.
func websocketHandler(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			fractal.Logger().Warn("websocket accept failed", "err", err)
			return
		}
		defer c.CloseNow()

		s := newSession()
		err = s.serve(ctx, c)
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			_ = c.Close(websocket.StatusNormalClosure, "")
		default:
			fractal.Logger().Debug("session ended", "remote", r.RemoteAddr, "err", err)
		}
	}
}

// session couples one connection to one engine.
type session struct {
	e *fractal.Engine
}

func newSession() *session {
	return &session{e: fractal.New()}
}

func (s *session) serve(ctx context.Context, c *websocket.Conn) error {
	for {
		var req request
		if err := wsjson.Read(ctx, c, &req); err != nil {
			return err
		}

		st, frame := s.handle(req)
		if err := wsjson.Write(ctx, c, st); err != nil {
			return err
		}
		if frame != nil {
			if err := c.Write(ctx, websocket.MessageBinary, frame); err != nil {
				return err
			}
		}
	}
}

// handle applies req to the engine and returns the status to send and,
// after a successful render, the frame bytes.
func (s *session) handle(req request) (status, []byte) {
	var (
		err   error
		frame []byte
		info  *frameInfo
	)
	switch req.Op {
	case "configure":
		err = s.e.ConfigureWindow(req.Width, req.Height)
	case "bounds":
		err = s.e.SetFractalBounds(req.XMin, req.XMax, req.YMin, req.YMax)
	case "backend":
		var m numeric.Mode
		if m, err = numeric.ParseMode(req.Mode); err == nil {
			err = s.e.SelectBackend(m)
		}
	case "zoom":
		err = s.e.Zoom(req.Factor)
	case "pan":
		err = s.e.Pan(req.X, req.Y)
	case "precision":
		err = s.e.SetPrecision(req.Bits)
	case "render":
		frame, info, err = s.render(req)
	case "status":
	default:
		err = fmt.Errorf("%w %q", errUnknownOp, req.Op)
	}

	st := s.status(req.Op)
	if err != nil {
		st.Error = err.Error()
		return st, nil
	}
	st.Frame = info
	return st, frame
}

func (s *session) render(req request) ([]byte, *frameInfo, error) {
	iter := req.Iter
	if iter == 0 {
		iter = s.e.Iterations()
	}
	threads := req.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	if err := s.e.Render(iter, threads); err != nil {
		return nil, nil, err
	}

	buf := s.e.Buffer()
	if req.Thumb > 0 {
		img := buf.Thumbnail(req.Thumb, req.Thumb)
		b := img.Bounds()
		return img.Pix, &frameInfo{Format: "rgba", Width: b.Dx(), Height: b.Dy()}, nil
	}
	// Copy so the frame stays valid if a later command resizes the buffer.
	pix := append([]byte(nil), buf.Data()...)
	return pix, &frameInfo{Format: "rgb", Width: buf.Width(), Height: buf.Height()}, nil
}

func (s *session) status(op string) status {
	e := s.e
	w, h := e.Size()
	xmin, xmax, ymin, ymax := e.Bounds()
	x1, y1, x2, y2 := e.PreviewRect()
	zoom := e.ZoomAccumulator()

	st := status{
		Op:            op,
		Backend:       e.Backend().String(),
		Precision:     e.Precision(),
		Width:         w,
		Height:        h,
		Bounds:        [4]float64{xmin, xmax, ymin, ymax},
		Preview:       [4]float64{x1, y1, x2, y2},
		Zoom:          zoom,
		Magnification: fractal.FormatMagnification(language.English, zoom),
	}
	if rs := e.Stats(); rs.Tiles > 0 {
		st.Stats = &renderStats{
			Backend:    rs.Mode.String(),
			Iterations: rs.Iterations,
			Workers:    rs.Workers,
			Tiles:      rs.Tiles,
			Millis:     float64(rs.Duration) / float64(time.Millisecond),
		}
	}
	return st
}
