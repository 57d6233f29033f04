package config

import "github.com/go-faster/city"

// HashForName computes the CityHash64 identity NameRegistry keys
// radar/sensor names by.
func HashForName(name string) int64 {
	return int64(city.Hash64([]byte(name)))
}
