package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"periph.io/x/host/v3"

	"github.com/heyspider/go-spider/internal/config"
	"github.com/heyspider/go-spider/internal/log"
	"github.com/heyspider/go-spider/pkg/command"
	"github.com/heyspider/go-spider/pkg/display"
	"github.com/heyspider/go-spider/pkg/gait"
	"github.com/heyspider/go-spider/pkg/rangefinder"
	"github.com/heyspider/go-spider/pkg/servo"
	"github.com/heyspider/go-spider/pkg/status"
	"github.com/heyspider/go-spider/pkg/thinking"
	"github.com/heyspider/go-spider/pkg/web"
)

func main() {
	detached := flag.Bool("detached", config.Detached(), "run without hardware (all servo commands are no-ops)")
	webPort := flag.String("web-port", config.WebPort(), "dashboard port")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*logLevel)
	log.Info("hey spider starting", "detached", *detached)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	bus, sensor, sink := buildHardware(*detached)

	// Dashboard server doubles as a status sink so mode and distance
	// stream straight to connected clients.
	server := web.NewServer(*webPort)
	sinks := status.MultiSink{sink, server}

	spider := gait.New(bus, sinks)
	spider.Startup()

	monitor := rangefinder.NewMonitor(sensor, sinks)
	go monitor.Run(ctx)

	// Reasoning service is optional: without a key the dispatcher only
	// handles keyword commands.
	var reasoner command.Reasoner
	var thoughtFn func() string
	if key := config.OpenAIKey(); key != "" {
		client, err := thinking.NewClient(key)
		if err == nil {
			reasoner = client
			thinker := thinking.NewThinker(client, monitor.Last, spider.Busy)
			go thinker.Run(ctx)
			thoughtFn = thinker.CurrentThought
		}
	} else {
		log.Warn("OPENAI_API_KEY not set, thinking disabled")
	}

	dispatcher := command.New(spider, reasoner, sinks)

	server.OnCommand = dispatcher.Handle
	server.BusyFn = spider.Busy
	server.JointsFn = spider.JointAngles
	server.ThoughtFn = thoughtFn
	server.StartAsync()

	if oled, ok := sink.(*display.OLED); ok {
		oled.ThoughtFn = thoughtFn
		go oled.Run(ctx)
	}

	<-ctx.Done()

	// Park the frame before exiting.
	spider.Neutral()
	sinks.UpdateMode(status.ModeShutdown)
	server.Shutdown()
	if closer, ok := bus.(*servo.PCA9685Bus); ok {
		closer.Close()
	}
	log.Info("goodbye")
}

// buildHardware probes for the servo board, the ultrasonic sensor and the
// OLED, falling back to detached equivalents per device. Hardware absence
// is a degraded-but-running state, never a startup failure.
func buildHardware(detached bool) (servo.Bus, rangefinder.Sensor, status.Sink) {
	if !detached {
		if _, err := host.Init(); err != nil {
			log.Warn("periph host init failed, running detached", "error", err)
			detached = true
		}
	}
	if detached {
		return servo.NewDetachedBus(), rangefinder.DetachedSensor{}, display.NewConsole()
	}

	var bus servo.Bus
	pca, err := servo.NewPCA9685Bus(config.I2CBus(), config.DefaultPCA9685Add)
	if err != nil {
		log.Warn("servo board unavailable, commands will be no-ops", "error", err)
		bus = servo.NewDetachedBus()
	} else {
		bus = pca
	}

	var sensor rangefinder.Sensor
	hcsr, err := rangefinder.NewHCSR04(config.TriggerPin(), config.EchoPin())
	if err != nil {
		log.Warn("distance sensor unavailable, publishing placeholder", "error", err)
		sensor = rangefinder.DetachedSensor{}
	} else {
		sensor = hcsr
	}

	var sink status.Sink
	oled, err := display.NewOLED(config.I2CBus())
	if err != nil {
		log.Warn("oled unavailable, logging status to console", "error", err)
		sink = display.NewConsole()
	} else {
		sink = oled
	}

	return bus, sensor, sink
}
