// Copyright (c) 2026 The orgchart Authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package agent

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ErrConfig is returned by [Config.Validate].
var ErrConfig = errors.New("invalid model configuration")

// Config is the model endpoint configuration.
type Config struct {
	APIKey string `name:"API key" validate:"required"`
	// BaseURL is the API base URL, or the Azure endpoint when APIVersion
	// is set.
	BaseURL string `name:"base URL" validate:"omitempty,url"`
	// APIVersion switches to the Azure OpenAI API.
	APIVersion string `name:"API version"`
	// Model is the model, or the deployment name on Azure.
	Model string `name:"model" validate:"required"`
	// AuthHeader, if set, is an additional header carrying the API key,
	// as required by some gateways.
	AuthHeader string `name:"auth header" validate:"omitempty,printascii,excludesall= :"`
	UserAgent  string `name:"user agent"`
}

// Azure reports whether the configuration targets Azure OpenAI.
func (c Config) Azure() bool {
	return c.APIVersion != ""
}

var (
	validate = validator.New(validator.WithRequiredStructEnabled())
	trans    ut.Translator
)

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("name"); name != "" {
			return name
		}
		return f.Name
	})
	enLocale := en.New()
	trans, _ = ut.New(enLocale, enLocale).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}
}

// Validate checks the configuration, the error lists every problem found.
func (c Config) Validate() error {
	var problems []string
	if err := validate.Struct(c); err != nil {
		var vErr validator.ValidationErrors
		if !errors.As(err, &vErr) {
			return err
		}
		for _, fe := range vErr {
			problems = append(problems, fe.Translate(trans))
		}
	}
	if c.Azure() && c.BaseURL == "" {
		problems = append(problems, "base URL is required for Azure OpenAI")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfig, strings.Join(problems, "; "))
	}
	return nil
}
