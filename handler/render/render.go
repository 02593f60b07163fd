package render

import (
	"encoding/json"
	"errors"
	"net/http"

	"tokenbank/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Text render with text
func Text(w http.ResponseWriter, t string) {
	w.Header().Set("Content-Type", "application/text")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(t)); err != nil {
		logrus.WithError(err).Errorln("render text")
	}
}

// Error write error, ledger errors keep their code
func Error(w http.ResponseWriter, err error) {
	twerr := codes.FromError(err)
	code := codes.Get(twerr.Code())
	if c, err := cast.ToIntE(twerr.Meta(codes.CustomCodeKey)); err == nil && c > 0 {
		code = c
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(twirp.ServerHTTPStatusFromErrorCode(twerr.Code()))

	resp := errorResponse{Code: code, Msg: twerr.Msg()}
	if ResponseErrorMessageAsHint {
		resp.Hint = err.Error()
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.InvalidArgumentError("request", err.Error()))
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}

// ErrorOrNotFound not found when isNotFound(err), otherwise Error
func ErrorOrNotFound(w http.ResponseWriter, err error, isNotFound func(error) bool) {
	if isNotFound(err) {
		NotFoundRequest(w, errors.New("not found"))
		return
	}

	Error(w, err)
}
