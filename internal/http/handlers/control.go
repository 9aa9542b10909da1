package handlers

import (
	"errors"
	"net/http"

	"github.com/betterscore/scoreboard-service/internal/domain/game"
	"github.com/betterscore/scoreboard-service/internal/http/requestutil"
	"github.com/betterscore/scoreboard-service/internal/logging"
)

// readFields decodes the body as a JSON object. A missing body is an empty
// payload; a malformed one is logged and treated as empty.
func (h *Handler) readFields(w http.ResponseWriter, r *http.Request) requestutil.Fields {
	fields, err := requestutil.ReadJSON(w, r)
	if err == nil || errors.Is(err, requestutil.ErrEmptyBody) {
		return fields
	}
	logging.Warn(loggerFromContext(r, h.logger), "ignoring malformed payload", "error", err)
	return nil
}

// intField returns the integer under key, or nil when it is absent or not an
// integer. A badly typed value is logged and leaves the other fields usable.
func (h *Handler) intField(r *http.Request, fields requestutil.Fields, key string) *int {
	v, err := fields.Int(key)
	if err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "ignoring malformed payload", "error", err)
	}
	return v
}

func (h *Handler) ScoreHome(w http.ResponseWriter, r *http.Request) {
	h.ctrl.ScoreHome(r.Context())
	writeOK(w)
}

func (h *Handler) ScoreAway(w http.ResponseWriter, r *http.Request) {
	h.ctrl.ScoreAway(r.Context())
	writeOK(w)
}

func (h *Handler) ResetScore(w http.ResponseWriter, r *http.Request) {
	h.ctrl.ResetScore(r.Context())
	writeOK(w)
}

func (h *Handler) NextPeriod(w http.ResponseWriter, r *http.Request) {
	h.ctrl.NextPeriod(r.Context())
	writeOK(w)
}

func (h *Handler) ResetPeriod(w http.ResponseWriter, r *http.Request) {
	h.ctrl.ResetPeriod(r.Context())
	writeOK(w)
}

func (h *Handler) PowerPlayHome(w http.ResponseWriter, r *http.Request) {
	h.ctrl.SetPowerPlay(r.Context(), game.SideHome)
	writeOK(w)
}

func (h *Handler) PowerPlayAway(w http.ResponseWriter, r *http.Request) {
	h.ctrl.SetPowerPlay(r.Context(), game.SideAway)
	writeOK(w)
}

func (h *Handler) ClearPowerPlay(w http.ResponseWriter, r *http.Request) {
	h.ctrl.ClearPowerPlay(r.Context())
	writeOK(w)
}

func (h *Handler) StartClock(w http.ResponseWriter, r *http.Request) {
	h.ctrl.StartClock(r.Context())
	writeOK(w)
}

func (h *Handler) StopClock(w http.ResponseWriter, r *http.Request) {
	h.ctrl.StopClock(r.Context())
	writeOK(w)
}

func (h *Handler) ResetClock(w http.ResponseWriter, r *http.Request) {
	h.ctrl.ResetClock(r.Context())
	writeOK(w)
}

// SetScore accepts {"home"?: int, "away"?: int}.
func (h *Handler) SetScore(w http.ResponseWriter, r *http.Request) {
	fields := h.readFields(w, r)
	h.ctrl.SetScore(r.Context(), h.intField(r, fields, "home"), h.intField(r, fields, "away"))
	writeOK(w)
}

// SetPeriod accepts {"period"?: int}.
func (h *Handler) SetPeriod(w http.ResponseWriter, r *http.Request) {
	fields := h.readFields(w, r)
	h.ctrl.SetPeriod(r.Context(), h.intField(r, fields, "period"))
	writeOK(w)
}

// SetTime accepts {"seconds"?: int} and always stops the clock.
func (h *Handler) SetTime(w http.ResponseWriter, r *http.Request) {
	fields := h.readFields(w, r)
	h.ctrl.SetTime(r.Context(), h.intField(r, fields, "seconds"))
	writeOK(w)
}

// SetPowerPlayTime accepts {"seconds"?: int}.
func (h *Handler) SetPowerPlayTime(w http.ResponseWriter, r *http.Request) {
	fields := h.readFields(w, r)
	h.ctrl.SetPowerPlayTime(r.Context(), h.intField(r, fields, "seconds"))
	writeOK(w)
}
