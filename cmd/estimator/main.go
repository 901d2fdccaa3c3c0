package main

import (
	"github.com/vamshi737/smartestimator/cmd/estimator/cmd"
)

func main() {
	cmd.Execute()
}
