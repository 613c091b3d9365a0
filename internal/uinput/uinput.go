//go:build linux

package uinput

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jetkvm/inputhook/internal/logging"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

var defaultLogger = logging.Subsystem("uinput")

// ErrClosed is returned by Emit after Close.
var ErrClosed = errors.New("uinput device closed")

const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetRelBit  = 0x40045566
	uiSetAbsBit  = 0x40045567

	maxNameSize = 80
	absCnt      = 0x40

	busVirtual = 0x06
)

// Event is one input_event written to the device.
type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// userDev mirrors struct uinput_user_dev.
type userDev struct {
	Name         [maxNameSize]byte
	ID           inputID
	FFEffectsMax uint32
	Absmax       [absCnt]int32
	Absmin       [absCnt]int32
	Absfuzz      [absCnt]int32
	Absflat      [absCnt]int32
}

// AbsAxis is an absolute axis and its inclusive range.
type AbsAxis struct {
	Code     uint16
	Min, Max int32
}

type Config struct {
	Name string
	Keys []uint16
	Rel  []uint16
	Abs  []AbsAxis
}

// Device is a virtual input device. Emit is safe for concurrent use.
type Device struct {
	fd   *os.File
	name string
	log  *zerolog.Logger

	lock sync.Mutex
}

// Create registers a virtual device at path (normally /dev/uinput).
func Create(path string, cfg Config, logger *zerolog.Logger) (*Device, error) {
	if logger == nil {
		logger = defaultLogger()
	}

	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s failed: %w. Ensure 'modprobe uinput' and permissions", path, err)
	}
	d := &Device{fd: f, name: cfg.Name, log: logger}

	if err := d.setup(cfg); err != nil {
		_ = f.Close()
		return nil, err
	}

	d.log.Info().Str("name", cfg.Name).Int("keys", len(cfg.Keys)).Int("abs", len(cfg.Abs)).Msg("virtual input device created")
	return d, nil
}

func (d *Device) setup(cfg Config) error {
	if len(cfg.Keys) > 0 {
		if err := d.ioctl(uiSetEvBit, evKey); err != nil {
			return fmt.Errorf("ioctl UI_SET_EVBIT EV_KEY failed: %w", err)
		}
		for _, code := range cfg.Keys {
			if err := d.ioctl(uiSetKeyBit, int(code)); err != nil {
				return fmt.Errorf("ioctl UI_SET_KEYBIT %d failed: %w", code, err)
			}
		}
	}
	if len(cfg.Rel) > 0 {
		if err := d.ioctl(uiSetEvBit, evRel); err != nil {
			return fmt.Errorf("ioctl UI_SET_EVBIT EV_REL failed: %w", err)
		}
		for _, code := range cfg.Rel {
			if err := d.ioctl(uiSetRelBit, int(code)); err != nil {
				return fmt.Errorf("ioctl UI_SET_RELBIT %d failed: %w", code, err)
			}
		}
	}

	dev := userDev{
		ID: inputID{Bustype: busVirtual, Vendor: 0x1d6b, Product: 0x0104, Version: 1},
	}
	copy(dev.Name[:maxNameSize-1], cfg.Name)

	if len(cfg.Abs) > 0 {
		if err := d.ioctl(uiSetEvBit, evAbs); err != nil {
			return fmt.Errorf("ioctl UI_SET_EVBIT EV_ABS failed: %w", err)
		}
		for _, a := range cfg.Abs {
			if a.Code >= absCnt {
				return fmt.Errorf("abs axis %d out of range", a.Code)
			}
			if err := d.ioctl(uiSetAbsBit, int(a.Code)); err != nil {
				return fmt.Errorf("ioctl UI_SET_ABSBIT %d failed: %w", a.Code, err)
			}
			dev.Absmin[a.Code] = a.Min
			dev.Absmax[a.Code] = a.Max
		}
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &dev); err != nil {
		return err
	}
	if _, err := d.fd.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write uinput_user_dev failed: %w", err)
	}

	if err := d.ioctl(uiDevCreate, 0); err != nil {
		return fmt.Errorf("ioctl UI_DEV_CREATE failed: %w", err)
	}
	return nil
}

func (d *Device) Name() string { return d.name }

func (d *Device) Close() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.fd == nil {
		return nil
	}
	_ = d.ioctl(uiDevDestroy, 0)
	err := d.fd.Close()
	d.fd = nil
	d.log.Info().Str("name", d.name).Msg("virtual input device destroyed")
	return err
}

func (d *Device) ioctl(request uint, arg int) error {
	return unix.IoctlSetInt(int(d.fd.Fd()), request, arg)
}

// Emit writes events followed by a SYN_REPORT as one frame.
func (d *Device) Emit(events ...Event) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.fd == nil {
		return ErrClosed
	}

	now := time.Now()
	tv := unix.NsecToTimeval(now.UnixNano())

	var buf bytes.Buffer
	for _, ev := range append(events, Event{Type: evSyn, Code: synReport}) {
		raw := inputEvent{Time: tv, Type: ev.Type, Code: ev.Code, Value: ev.Value}
		if err := binary.Write(&buf, binary.LittleEndian, &raw); err != nil {
			return err
		}
	}
	if _, err := d.fd.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write to %s: %w", d.name, err)
	}
	return nil
}
