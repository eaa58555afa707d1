package main

import "github.com/marginote/annotator-api/cmd"

// @title           Annotator API
// @version         1.0.0
// @description     A local-first annotation engine for time-based media
// @contact.name    API Support
// @contact.url     https://github.com/marginote/annotator-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	cmd.Execute()
}
