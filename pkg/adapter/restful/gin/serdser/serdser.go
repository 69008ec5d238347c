// Package serdser contains the serialization and deserialization
// helpers which are shared by all resources. Errors are serialized as
// a JSON object, either with a "detail" key or with one key per
// invalid field.
package serdser

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/sitetrack/pkg/core/cerr"
	"github.com/momeni/sitetrack/pkg/core/model"
)

var tagNamesOnce sync.Once

// UseTagFieldNames makes the gin default validator to report fields
// by their json (or form) tag names instead of Go struct field names.
func UseTagFieldNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form", "uri"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				switch name {
				case "-":
					return ""
				case "":
					continue
				default:
					return name
				}
			}
			return f.Name
		})
	})
}

func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	if elist, ok := (*errs)[name]; !ok {
		(*errs)[name] = msgs
	} else {
		(*errs)[name] = append(elist, msgs...)
	}
}

func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr writes err as the response. A *cerr.Error is reported with
// its HTTP status code. Invalid coordinates are reported per field.
// Other errors are reported as internal server errors.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if !errors.As(err, &ce) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
		return
	}
	var coordErr *model.CoordinateError
	if errors.As(ce.Err, &coordErr) {
		var errs map[string][]string
		AddErr(&errs, coordErr.Axis, coordErr.Error())
		c.JSON(ce.HTTPStatusCode, errs)
		return
	}
	c.JSON(ce.HTTPStatusCode, gin.H{
		"detail": ce.Err.Error(),
	})
}

// Abort is like SerErr, but also aborts the handlers chain, so it may
// be used by middlewares.
func Abort(c *gin.Context, err error) {
	SerErr(c, err)
	c.Abort()
}
