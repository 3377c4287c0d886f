package types

type MainOpts struct {
	ColorAlways  bool
	ConfigValues map[string]string
	KeepNewer    bool
	Template     string
}

type InspectOpts struct {
	DisplayJson bool
	MinScore    int64
}

type DatesOpts struct {
	DisplayJson bool
}
