/*
 * errors.go, part of godsf
 *
 * Copyright (c) 2024 Raul Mera Adasme <raul_dot_mera_changeforat_usach_dot_cl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

package dsf

import "fmt"

// Err is the interface all errors in this library implement. The Decorate
// method allows adding information to the error as it is passed up the
// calling stack, without changing its type or wrapping it in something else.
// Each element of the decoration slice should be the name of a function in
// the stack, plus, optionally, extra information in the format
// "FunctionName: Extra info".
type Err interface {
	Error() string
	Decorate(string) []string
}

// LastWindowError is implemented by the harmless error a WindowSource
// returns when it runs out of windows. It carries a useless method so
// normal termination can be filtered in a type switch.
type LastWindowError interface {
	Err
	NormalLastWindowTermination()
}

// Error is the concrete error used across the library. It fulfills Err.
type Error struct {
	message string
	deco    []string
}

func NewError(message string, caller string) *Error {
	return &Error{message: message, deco: []string{caller}}
}

func (err *Error) Error() string {
	return fmt.Sprintf("godsf error: %s", err.message)
}

// Decorate adds new information to the error and returns the current
// decoration slice. An empty string adds nothing.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// errDecorate asserts that err implements Err and decorates it with the
// caller's name before returning it. Any other error is returned as is.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Err)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

// lastWindowError signals the normal end of a window sequence.
type lastWindowError struct {
	deco []string
}

func (e *lastWindowError) NormalLastWindowTermination() {}

func (e *lastWindowError) Error() string { return "EOT" }

func (e *lastWindowError) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

// NewLastWindowError returns the error a WindowSource implementation should
// return, together with a nil window, when the sequence is exhausted.
func NewLastWindowError(caller string) LastWindowError {
	return &lastWindowError{deco: []string{caller}}
}
