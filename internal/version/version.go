package version

import (
	"fmt"
	"strconv"
	"time"
)

// Version is the application version. Can be overridden at build time via:
//
//	go build -ldflags "-X github.com/sbtransport/sbtconsole/internal/version.Version=1.2.3"
var Version = "1.0"

// Banner prints identifying information about the console.
func Banner() string {
	y := strconv.Itoa(time.Now().Year())
	copyright := "Copyright 2024-" + y + " SB Transport. All rights reserved."

	return fmt.Sprintf("%s\nSBT Console (v%s)\n%s\n", product(), Version, copyright)
}

func product() string {
	// http://patorjk.com/software/taag/#p=display&f=Standard&t=SBT
	const s = `
  ____  ____ _____ 
 / ___|| __ )_   _|
 \___ \|  _ \ | |  
  ___) | |_) || |  
 |____/|____/ |_|  
`
	return s
}
