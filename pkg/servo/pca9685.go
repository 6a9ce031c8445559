package servo

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/pca9685"
)

// ServoFrequency is the PWM refresh rate the SG90-class servos expect.
const ServoFrequency = 50 * physic.Hertz

// Pulse-width limits for the servo group, in 12-bit duty ticks at 50 Hz.
// 50..650 spans roughly 0.6ms..3.2ms, the usable band of the stock servos.
const (
	minServoPwm gpio.Duty = 50
	maxServoPwm gpio.Duty = 650
)

// PCA9685Bus drives servos through a PCA9685 16-channel PWM board over I2C.
// This is the attached-mode bus; construction fails cleanly when the board
// is missing so the caller can fall back to a DetachedBus.
type PCA9685Bus struct {
	closer i2c.BusCloser
	servos *pca9685.ServoGroup
}

// NewPCA9685Bus opens the named I2C bus (empty string selects the first
// available one) and initializes the board at the given address.
func NewPCA9685Bus(busName string, addr uint16) (*PCA9685Bus, error) {
	i2cBus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("servo: open i2c bus: %w", err)
	}

	dev, err := pca9685.NewI2C(i2cBus, addr)
	if err != nil {
		i2cBus.Close()
		return nil, fmt.Errorf("servo: init pca9685: %w", err)
	}
	if err := dev.SetPwmFreq(ServoFrequency); err != nil {
		i2cBus.Close()
		return nil, fmt.Errorf("servo: set pwm frequency: %w", err)
	}

	group := pca9685.NewServoGroup(dev, minServoPwm, maxServoPwm, 0, 180*physic.Degree)
	return &PCA9685Bus{closer: i2cBus, servos: group}, nil
}

// SetAngle commands the servo on the given channel.
func (b *PCA9685Bus) SetAngle(channel, angle int) error {
	if b == nil || b.servos == nil {
		return ErrBusUnavailable
	}
	if channel < 0 || channel >= NumChannels {
		return ErrChannelOutOfRange
	}
	s := b.servos.GetServo(channel)
	if err := s.SetAngle(physic.Angle(angle) * physic.Degree); err != nil {
		return fmt.Errorf("servo: channel %d: %w", channel, err)
	}
	return nil
}

// Close releases the underlying I2C bus.
func (b *PCA9685Bus) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}
