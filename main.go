package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nikolaydubina/caption.go/dataset"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	d := driver{
		log:    log,
		layout: dataset.DefaultLayout(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		out:    os.Stdout,
	}

	if err := NewCLI(d.run).Execute(); err != nil {
		os.Exit(1)
	}
}
