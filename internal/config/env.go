package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// LoadEnv loads environment variables into the config struct.
// It uses `env` struct tags to determine which environment variables to load.
func LoadEnv(config *AppConfig) error {
	log.Debug().Msg("Loading environment variables")

	sections := []interface{}{
		&config.App,
		&config.Database,
		&config.Server,
		&config.JWT,
		&config.Upload,
		&config.Diagnosis,
		&config.Logging,
		&config.CORS,
		&config.PasswordHash,
	}

	for _, section := range sections {
		if err := processStructEnv(section); err != nil {
			return err
		}
	}

	return nil
}

// processStructEnv processes environment variables for a struct.
func processStructEnv(s interface{}) error {
	val := reflect.ValueOf(s).Elem()
	typ := val.Type()

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		envValue, exists := os.LookupEnv(envName)
		if !exists {
			continue
		}

		switch fieldVal.Kind() {
		case reflect.String:
			fieldVal.SetString(envValue)

		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if field.Type == reflect.TypeOf(time.Duration(0)) {
				duration, err := time.ParseDuration(envValue)
				if err != nil {
					return fmt.Errorf("invalid duration for %s: %w", envName, err)
				}
				fieldVal.Set(reflect.ValueOf(duration))
			} else {
				intValue, err := strconv.ParseInt(envValue, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid integer for %s: %w", envName, err)
				}
				fieldVal.SetInt(intValue)
			}

		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			uintValue, err := strconv.ParseUint(envValue, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid unsigned integer for %s: %w", envName, err)
			}
			fieldVal.SetUint(uintValue)

		case reflect.Bool:
			boolValue, err := strconv.ParseBool(envValue)
			if err != nil {
				return fmt.Errorf("invalid boolean for %s: %w", envName, err)
			}
			fieldVal.SetBool(boolValue)

		case reflect.Slice:
			if field.Type.Elem().Kind() == reflect.String {
				parts := strings.Split(envValue, ",")
				for j := range parts {
					parts[j] = strings.TrimSpace(parts[j])
				}
				fieldVal.Set(reflect.ValueOf(parts))
			}

		default:
			return fmt.Errorf("unsupported config field type for %s", envName)
		}
	}

	return nil
}
