package httputil

import (
	"net/url"
	"reflect"
)

// GetURLFields checks which query parameters of the filter struct are set
// in the URL.
//
// queryFields contains the struct field names that are used to filter
// resources directly and can be passed to gorm's Where. setFields contains
// all field names whose parameter is set, including fields tagged with
// `filterField:"false"` that the caller processes itself.
func GetURLFields(url *url.URL, filter any) (queryFields []any, setFields []string) {
	val := reflect.Indirect(reflect.ValueOf(filter))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i).Name
		param := val.Type().Field(i).Tag.Get("form")
		filterField := val.Type().Field(i).Tag.Get("filterField")

		if url.Query().Has(param) {
			setFields = append(setFields, field)

			if filterField != "false" {
				queryFields = append(queryFields, field)
			}
		}
	}
	return queryFields, setFields
}
