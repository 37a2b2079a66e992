package query

import "time"

type Config struct {
	RequestTimeout  time.Duration `envconfig:"KDST_QUERY_REQUEST_TIMEOUT" default:"30s"`
	MaxDataItemsLen int           `envconfig:"KDST_QUERY_MAX_DATA_ITEMS_LEN" default:"100"`
}
