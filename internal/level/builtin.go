package level

// Sequence is the fixed level progression for a session. Sessions always
// start at the first entry and never replay out of order.
var Sequence = []Layout{Easy, Medium, Hard}

// Easy is an open maze with three long horizontal walls.
var Easy = Layout{
	Name: "Easy",
	Rows: []string{
		"WWWWWWWWWWWWWWWWWWWWWWWWWWWWWW",
		"W P                          W",
		"W                            W",
		"W  WWWWWWWWWWWWWWWWWWWWWWWW  W",
		"W                            W",
		"W                            W",
		"W                            W",
		"W  WWWWWWWWWWWWWWWWWWWWWWWW  W",
		"W                            W",
		"W                            W",
		"W                            H",
		"W  WWWWWWWWWWWWWWWWWWWWWWWW  W",
		"W                            W",
		"W                            W",
		"WWWWWWWWWWWWWWWWWWWWWWWWWWWWWW",
	},
}

// Medium is a corridor maze with a single winding route.
var Medium = Layout{
	Name: "Medium",
	Rows: []string{
		"WWWWWWWWWWWWWWWWWWWWWWWWWWWWWW",
		"W P  W                     H W",
		"W    W WWW WWWWWWWWWWWW WWWW W",
		"W WWWW     W          W      W",
		"W W    WWWWW WWWWWWWW W WWWW W",
		"W WWWW W   W W      W W W  W W",
		"W W    W W W W WWWW W W WW W W",
		"W W WWWW W W W W  W W W    W W",
		"W W      W   W WWWW W WWWWWW W",
		"W WWWWWWWWWWWW W    W        W",
		"W            W WWWWWWWWWWWWW W",
		"W WWWWWWWWWW W               W",
		"W          W WWWWWWWWWWWWWWW W",
		"W WWWWWWWW W                 W",
		"WWWWWWWWWWWWWWWWWWWWWWWWWWWWWW",
	},
}

// Hard is a dense maze with narrow single-tile corridors.
var Hard = Layout{
	Name: "Hard",
	Rows: []string{
		"WWWWWWWWWWWWWWWWWWWWWWWWWWWWWW",
		"WP W   W   W W   W     W   H W",
		"W  W W W WWW W W W WWWWW WWW W",
		"WW W W W W   W W W W     W   W",
		"W  W W W W WWW W W W WWWWW WWW W",
		"W WW W W W W   W W   W     W",
		"W W  W W W W WWWWWWWWW WWW W W",
		"W W WWW W  W  W   W W   W    W",
		"W W W   WWWWWWW W W W W WWWWW W",
		"W W W WWWW    W W W W W W     W",
		"W W W W   WWWWW W W W W W WWWWW",
		"W W W   W W     W W W W     W",
		"W W W WWW W WWWWWWWWW WWWWWW  W",
		"W     W                     W",
		"WWWWWWWWWWWWWWWWWWWWWWWWWWWWWW",
	},
}
