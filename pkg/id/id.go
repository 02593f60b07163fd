package id

import (
	"crypto/md5"
	"io"
	"strconv"
	"strings"

	"github.com/fox-one/pkg/uuid"
	gouuid "github.com/gofrs/uuid"
)

// GenTraceID new random trace id
func GenTraceID() string {
	return uuid.New()
}

// TraceID trace id of the parts, stable for the same input
func TraceID(parts ...string) string {
	return UUIDFromString(strings.Join(parts, ":"))
}

// Modify derive a trace id from another one
func Modify(traceID, name string) string {
	return uuid.Modify(traceID, name)
}

// Num2Str convert uint64 to number string
func Num2Str(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// UUIDFromString  new uuid string from string
func UUIDFromString(text string) string {
	h := md5.New()
	_, _ = io.WriteString(h, text)
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return gouuid.FromBytesOrNil(sum).String()
}
