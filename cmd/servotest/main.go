// servotest sweeps a single joint between two angles, for checking the
// wiring harness and servo travel after assembly.
package main

import (
	"flag"
	"time"

	"periph.io/x/host/v3"

	"github.com/heyspider/go-spider/internal/config"
	"github.com/heyspider/go-spider/internal/log"
	"github.com/heyspider/go-spider/pkg/gait"
	"github.com/heyspider/go-spider/pkg/servo"
)

func main() {
	joint := flag.String("joint", "leg1_shoulder", "joint to sweep")
	low := flag.Int("low", 60, "low angle")
	high := flag.Int("high", 120, "high angle")
	cycles := flag.Int("cycles", 3, "sweep cycles")
	detached := flag.Bool("detached", false, "run without hardware")
	flag.Parse()

	log.Init("debug")

	j := servo.Joint(*joint)
	if !j.Valid() {
		log.Error("unknown joint", "joint", *joint)
		return
	}

	var bus servo.Bus
	if *detached {
		bus = servo.NewDetachedBus()
	} else {
		if _, err := host.Init(); err != nil {
			log.Error("periph host init failed", "error", err)
			return
		}
		pca, err := servo.NewPCA9685Bus(config.I2CBus(), config.DefaultPCA9685Add)
		if err != nil {
			log.Error("servo board unavailable", "error", err)
			return
		}
		defer pca.Close()
		bus = pca
	}

	spider := gait.New(bus, nil)
	spider.Startup()

	delay := 100 * time.Millisecond
	for i := 0; i < *cycles; i++ {
		log.Info("sweep", "joint", j, "cycle", i+1)
		spider.MoveJoint(j, *low, delay)
		time.Sleep(300 * time.Millisecond)
		spider.MoveJoint(j, *high, delay)
		time.Sleep(300 * time.Millisecond)
	}
	spider.MoveJoint(j, servo.NeutralAngle, delay)
}
