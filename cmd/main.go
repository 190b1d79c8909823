package main

import (
	"github.com/Dip-ankar/Eccomerce/internal/app"
	"github.com/Dip-ankar/Eccomerce/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
