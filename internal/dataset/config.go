package dataset

type Config struct {
	// File is a text dataset loaded into the index at startup.
	File string `envconfig:"KDST_DATASET_FILE"`
	// Name is a dataset stored in the database, loaded when File is empty.
	Name string `envconfig:"KDST_DATASET_NAME"`
}
