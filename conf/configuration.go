package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type configOptions struct {
	DbPath        string
	DbPoolSize    int
	DbPoolTimeout time.Duration
	DataFolder    string
	LogLevel      string

	DevCheckTx bool
	DevLogSQL  bool
}

// Server holds the process-wide configuration. It is populated once by Load
// and treated as read-only afterwards.
var Server = &configOptions{}

var loadOnce sync.Once

func init() {
	viper.SetDefault("datafolder", ".")
	viper.SetDefault("dbpath", "")
	viper.SetDefault("dbpoolsize", 10)
	viper.SetDefault("dbpooltimeout", 10*time.Second)
	viper.SetDefault("loglevel", "info")
	viper.SetDefault("devchecktx", false)
	viper.SetDefault("devlogsql", false)
}

// Load reads the configuration from file (if set via SetConfigFile/paths) and
// environment, and resolves defaults. Safe to call more than once; only the
// first call takes effect.
func Load() error {
	var err error
	loadOnce.Do(func() {
		viper.SetEnvPrefix("MELISMA")
		viper.AutomaticEnv()

		err = viper.Unmarshal(Server)
		if err != nil {
			err = fmt.Errorf("loading configuration: %w", err)
			return
		}
		if Server.DbPath == "" {
			Server.DbPath = filepath.Join(Server.DataFolder, "melisma.db")
		}
		if Server.DbPoolSize <= 0 {
			Server.DbPoolSize = 10
		}
		if Server.DbPoolTimeout <= 0 {
			Server.DbPoolTimeout = 10 * time.Second
		}
		err = os.MkdirAll(filepath.Dir(Server.DbPath), 0o700)
	})
	return err
}
