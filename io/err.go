package io

import (
	"errors"

	"github.com/ezrec/dcpu16/translate"
)

var f = translate.From

var (
	// Bus errors
	ErrBusFull = errors.New(f("bus full"))

	// Device errors
	ErrTapeOutput = errors.New(f("tape has no output"))
)
