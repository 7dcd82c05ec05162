// Command solarsystem opens an interactive 3D view of the solar system.
//
// Settings are read from the TOML file named by SOLAR_CONFIG, or from
// solar.toml in the working directory when present.
package main

import "solarsystem/internal/game"

func main() {
	game.RunDesktop()
}
