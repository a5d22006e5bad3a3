package configutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// ImportKey is the config value we look for that denotes a file to import
// when resolving the configuration. Shared recipe-agent settings (e.g. a
// common logging block) live in imported files.
var ImportKey = "imports"

// ResolveAndMergeFile reads the configuration file provided, resolves all
// imports from that configuration file, and then merges the resulting
// configs into the provided viper.
func ResolveAndMergeFile(v *viper.Viper, filePath string) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return err
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == "" {
		return errors.New("configuration file has no extension")
	}

	extSupported := false
	for _, e := range viper.SupportedExts {
		if ext[1:] == e {
			extSupported = true
			break
		}
	}
	if !extSupported {
		return fmt.Errorf("unsupported configuration file extension: %s", ext)
	}

	v.SetConfigType(ext[1:])
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	if err := resolveAllImports(v); err != nil {
		return fmt.Errorf("could not resolve configuration imports: %v", err)
	}

	return nil
}

// resolveImports performs a DFS on the config imports mentioned by the viper
// config. The visited set is added to in pre-order traversal in order to
// prevent circular imports. The configs slice is appended to via post-order
// traversal to ensure we import the children first.
func resolveImports(v *viper.Viper, configs *[]string, visited *map[string]struct{}) error {
	imports := v.GetStringSlice(ImportKey)

	if len(imports) == 0 {
		return nil
	}

	for _, i := range imports {
		// skip empty imports (e.g., imports: or imports: -)
		if len(i) == 0 {
			continue
		}

		var path string
		if i[0] == os.PathSeparator {
			path = filepath.Clean(i)
		} else {
			// relative imports resolve against the importing file
			dir := filepath.Dir(v.ConfigFileUsed())
			path = filepath.Join(dir, i)
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			return err
		}

		if _, ok := (*visited)[path]; !ok {
			(*visited)[path] = struct{}{}

			child := viper.New()
			child.SetConfigFile(path)
			if err := child.ReadInConfig(); err != nil {
				return err
			}

			if err := resolveImports(child, configs, visited); err != nil {
				return err
			}

			*configs = append(*configs, path)
		}
	}

	return nil
}

func resolveAllImports(v *viper.Viper) error {
	configs := []string{}
	visited := make(map[string]struct{})

	if err := resolveImports(v, &configs, &visited); err != nil {
		return err
	}

	// the root config merges last so it wins over anything it imports
	configs = append(configs, v.ConfigFileUsed())
	for _, configFilePath := range configs {
		if err := mergeConfigFile(v, configFilePath); err != nil {
			return fmt.Errorf("merging config %s: %w", configFilePath, err)
		}
	}

	return nil
}

func mergeConfigFile(v *viper.Viper, filePath string) error {
	r, err := os.Open(filePath)
	if err != nil {
		return err
	}

	defer func() { _ = r.Close() }()
	return v.MergeConfig(r)
}

// BindEnvsRecursive walks the mapstructure tags of the given struct and binds
// the corresponding environment variables, so nested agent config fields can
// be overridden from the environment without being present in the file.
func BindEnvsRecursive(v *viper.Viper, iface interface{}, path string) error {
	val := reflect.ValueOf(iface).Elem()
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		fieldType := typ.Field(i)
		tag := fieldType.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		fullPath := tag
		if path != "" {
			fullPath = path + "." + tag
		}

		field := val.Field(i)

		if field.Kind() == reflect.Ptr {
			if field.IsNil() && field.Type().Elem().Kind() == reflect.Struct {
				field.Set(reflect.New(field.Type().Elem()))
			}
			field = field.Elem()
		}

		if field.Kind() == reflect.Struct {
			if err := BindEnvsRecursive(v, field.Addr().Interface(), fullPath); err != nil {
				return err
			}
		}

		if err := v.BindEnv(fullPath); err != nil {
			return fmt.Errorf("failed to bind environment variable: %w", err)
		}
	}

	return nil
}
