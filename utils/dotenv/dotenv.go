package dotenv

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
)

// LoadDotEnvs loads environment variables from the .env file in the
// working directory. A missing file is not an error, deployed
// environments configure everything through real environment variables.
func LoadDotEnvs() error {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}

// LoadDotEnvsInTests loads the repository root .env regardless of which
// package directory the test binary runs in.
func LoadDotEnvsInTests() error {
	_, filename, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(filename), "..", "..")
	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}
