package param

import (
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi"
	"github.com/gorilla/schema"
	"github.com/spf13/cast"
)

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("json")
	d.IgnoreUnknownKeys(true)
	return d
}()

// Binding decodes the query string into v and validates its valid tags
func Binding(r *http.Request, v interface{}) error {
	if err := decoder.Decode(v, r.URL.Query()); err != nil {
		return err
	}

	_, err := govalidator.ValidateStruct(v)
	return err
}

// Uint64 unsigned url param
func Uint64(r *http.Request, key string) (uint64, error) {
	return cast.ToUint64E(chi.URLParam(r, key))
}
