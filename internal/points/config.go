package points

import "time"

type Config struct {
	RequestTimeout  time.Duration `envconfig:"KDST_POINTS_REQUEST_TIMEOUT" default:"60s"`
	MaxDataItemsLen int           `envconfig:"KDST_POINTS_MAX_DATA_ITEMS_LEN" default:"10000"`
}
