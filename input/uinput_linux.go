//go:build linux

package input

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// ioctl requests from linux/uinput.h
const (
	uiSetEvbit  = 0x40045564
	uiSetKeybit = 0x40045565
	uiDevCreate = 0x5501
)

// event types from linux/input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
)

const (
	busUSB     = 0x03
	deviceName = "pastekit virtual keyboard"

	// eventGap lets the compositor register modifier state between events.
	eventGap = 5 * time.Millisecond
	// settle is how long a freshly created device takes to show up.
	settle = 200 * time.Millisecond
	// evSize is sizeof(struct input_event) on 64-bit.
	evSize = 24
)

var uinputPaths = []string{"/dev/uinput", "/dev/input/uinput"}

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type uinputUserDev struct {
	Name    [80]byte
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
	FFMax   uint32
	Abs     [4][64]int32
}

// keyboard is the process-wide virtual device, created on first use.
type keyboard struct {
	once sync.Once
	err  error

	mu sync.Mutex
	f  *os.File
}

var kbd keyboard

func uinputPath() (string, error) {
	for _, p := range uinputPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errors.New("uinput device not found, try: sudo modprobe uinput")
}

func (k *keyboard) open() error {
	k.once.Do(func() {
		path, err := uinputPath()
		if err != nil {
			k.err = err
			return
		}
		f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, os.ModeDevice)
		if err != nil {
			k.err = err
			return
		}
		if err := register(int(f.Fd())); err != nil {
			f.Close()
			k.err = fmt.Errorf("register device: %w", err)
			return
		}
		if err := writeDevice(f); err != nil {
			f.Close()
			k.err = err
			return
		}
		k.f = f
		time.Sleep(settle)
	})
	return k.err
}

// register enables key events for every standard key code, which is what
// makes udev classify the device as a keyboard.
func register(fd int) error {
	for _, ev := range []int{evKey, evSyn} {
		if err := unix.IoctlSetInt(fd, uiSetEvbit, ev); err != nil {
			return err
		}
	}
	for code := 0; code < 256; code++ {
		if err := unix.IoctlSetInt(fd, uiSetKeybit, code); err != nil {
			return err
		}
	}
	return nil
}

func writeDevice(f *os.File) error {
	dev := uinputUserDev{Bustype: busUSB, Vendor: 0x1234, Product: 0x5679, Version: 1}
	copy(dev.Name[:], deviceName)
	if err := binary.Write(f, binary.LittleEndian, &dev); err != nil {
		return err
	}
	return unix.IoctlSetInt(int(f.Fd()), uiDevCreate, 0)
}

func (k *keyboard) emit(code uint16, down bool) error {
	ev := inputEvent{Type: evKey, Code: code}
	if down {
		ev.Value = 1
	}
	if err := binary.Write(k.f, binary.LittleEndian, &ev); err != nil {
		return err
	}
	return binary.Write(k.f, binary.LittleEndian, &inputEvent{Type: evSyn})
}

type uinputPoster struct{}

func NewPoster() Poster {
	return uinputPoster{}
}

// Post writes each event followed by a sync report. If a write fails midway,
// keys already pressed are released so no modifier stays held.
func (uinputPoster) Post(events []Event) error {
	if err := kbd.open(); err != nil {
		return fmt.Errorf("%w: %v", ErrEventConstruction, err)
	}

	kbd.mu.Lock()
	defer kbd.mu.Unlock()
	held := map[Key]bool{}
	for i, ev := range events {
		if err := kbd.emit(uint16(ev.Key), ev.Down); err != nil {
			for key := range held {
				kbd.emit(uint16(key), false)
			}
			return fmt.Errorf("uinput write: %w", err)
		}
		if ev.Down {
			held[ev.Key] = true
		} else {
			delete(held, ev.Key)
		}
		if i < len(events)-1 {
			time.Sleep(eventGap)
		}
	}
	return nil
}

// Verify taps the modifier key alone, which types nothing, and reads the
// events back from the kernel input layer to confirm delivery.
func Verify() (string, error) {
	if err := kbd.open(); err != nil {
		return "", fmt.Errorf("uinput init: %w", err)
	}

	evdevPath, err := findEvdev(deviceName)
	if err != nil {
		return "", err
	}
	evdev, err := os.Open(evdevPath)
	if err != nil {
		return "", fmt.Errorf("cannot open %s: %w", evdevPath, err)
	}
	defer evdev.Close()

	tap := []Event{{Key: KeyCommand, Down: true}, {Key: KeyCommand}}
	if err := NewPoster().Post(tap); err != nil {
		return "", fmt.Errorf("post: %w", err)
	}

	type result struct {
		down, up bool
		err      error
	}
	ch := make(chan result, 1)
	go func() {
		var r result
		buf := make([]byte, evSize*32)
		for !(r.down && r.up) {
			n, err := evdev.Read(buf)
			if err != nil {
				r.err = err
				break
			}
			for i := 0; i+evSize <= n; i += evSize {
				typ := binary.LittleEndian.Uint16(buf[i+16:])
				code := binary.LittleEndian.Uint16(buf[i+18:])
				value := int32(binary.LittleEndian.Uint32(buf[i+20:]))
				if typ != evKey || Key(code) != KeyCommand {
					continue
				}
				r.down = r.down || value == 1
				r.up = r.up || value == 0
			}
		}
		ch <- r
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("reading events: %w", r.err)
		}
		return fmt.Sprintf("keystroke delivery verified via %s", evdevPath), nil
	case <-time.After(500 * time.Millisecond):
		return "", errors.New("timed out waiting for keystroke events")
	}
}

func findEvdev(name string) (string, error) {
	entries, err := os.ReadDir("/sys/class/input")
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		data, err := os.ReadFile(filepath.Join("/sys/class/input", e.Name(), "device", "name"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(data)) == name {
			return filepath.Join("/dev/input", e.Name()), nil
		}
	}
	return "", fmt.Errorf("%s evdev device not found", name)
}
