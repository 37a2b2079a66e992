package buildinfo

const Graffiti = " _  __ ____   ____  _____ \n| |/ /|  _ \\ / ___||_   _|\n| ' / | | | |\\___ \\  | |  \n| . \\ | |_| | ___) | | |  \n|_|\\_\\|____/ |____/  |_|  \n\n"

var (
	BuildTag string = "v0.1.0"
	Name     string = "KDST"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo
