package server

import (
	"net/http"

	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type ProductsRequest struct {
	Sort string `schema:"sort"`
}

type SortRequest struct {
	Key string `schema:"key,default:recommended"`
}

type FilterRequest struct {
	Group  string `schema:"group,required"`
	Option string `schema:"option,required"`
}

type ViewRequest struct {
	Name  string `schema:"name,required"`
	Value *bool  `schema:"value"`
}

// decodeQuery fills dst from the query string and, for form posts, the body.
func decodeQuery(r *http.Request, dst any) error {
	values := r.URL.Query()
	if r.Method == http.MethodPost && r.Header.Get("Content-Type") == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return err
		}
		values = r.Form
	}
	return decoder.Decode(dst, values)
}
