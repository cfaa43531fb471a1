package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type config struct {
	Production         bool          `env:"PRODUCTION" envDefault:"false"`
	Port               string        `env:"PORT" envDefault:"80"`
	Storage            string        `env:"STORAGE" envDefault:"postgres"`
	PostgresUrl        string        `env:"POSTGRES_URL"`
	RedisUrl           string        `env:"REDIS_URL" envDefault:""`
	Notifier           string        `env:"NOTIFIER" envDefault:"log"`
	FCMCredentialsPath string        `env:"FCM_CREDENTIALS_PATH" envDefault:"secrets/firebase.json"`
	Timezone           string        `env:"TIMEZONE" envDefault:"UTC"`
	DispatchSchedule   string        `env:"DISPATCH_SCHEDULE" envDefault:"@every 1m"`
	DispatchWorkers    int           `env:"DISPATCH_WORKERS" envDefault:"8"`
	DispatchLockTTL    time.Duration `env:"DISPATCH_LOCK_TTL" envDefault:"5m"`
	SendTimeout        time.Duration `env:"SEND_TIMEOUT" envDefault:"10s"`
	MarkTimeout        time.Duration `env:"MARK_TIMEOUT" envDefault:"5s"`
	HolidaysPath       string        `env:"HOLIDAYS_PATH" envDefault:""`
	HolidayColor       string        `env:"HOLIDAY_COLOR" envDefault:"#ef4444"`
	MaxWindow          time.Duration `env:"MAX_WINDOW" envDefault:"8784h"`
	ICSProductID       string        `env:"ICS_PRODUCT_ID" envDefault:"-//datekeeper-plus//EN"`
}

var conf config

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

// Storage is either "postgres" or "memory".
func Storage() string {
	return conf.Storage
}

func PostgresURL() string {
	return conf.PostgresUrl
}

// RedisURL is empty when passes are serialized in process.
func RedisURL() string {
	return conf.RedisUrl
}

// Notifier is either "log" or "fcm".
func Notifier() string {
	return conf.Notifier
}

func FCMCredentialsPath() string {
	return conf.FCMCredentialsPath
}

// Location is the display timezone for rendered notifications. Unknown
// names fall back to UTC.
func Location() *time.Location {
	loc, err := time.LoadLocation(conf.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func DispatchSchedule() string {
	return conf.DispatchSchedule
}

func DispatchWorkers() int {
	if conf.DispatchWorkers < 1 {
		return 1
	}
	return conf.DispatchWorkers
}

func DispatchLockTTL() time.Duration {
	return conf.DispatchLockTTL
}

func SendTimeout() time.Duration {
	return conf.SendTimeout
}

func MarkTimeout() time.Duration {
	return conf.MarkTimeout
}

func HolidaysPath() string {
	return conf.HolidaysPath
}

func HolidayColor() string {
	return conf.HolidayColor
}

func MaxWindow() time.Duration {
	return conf.MaxWindow
}

func ICSProductID() string {
	return conf.ICSProductID
}
