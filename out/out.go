/*
 * out.go, part of godsf
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

//Package out is a reference serialization for the named-array hand-off:
//zstd-compressed plain text, one record per array. The core does not
//depend on any of this; any consumer that prefers another encoding can
//take the arrays straight from a Result.
//
//The format is line-oriented: a record starts with a header line
//"# name rows cols description", followed by rows lines of cols
//space-separated values.
package out

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	dsf "github.com/rmera/godsf"
)

// Writer serializes named arrays to a zstd-compressed text file.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	filename  string
	writeable bool
}

// NewWriter creates the named file and readies it for array records.
func NewWriter(name string) (*Writer, error) {
	w := new(Writer)
	var err error
	w.f, err = os.Create(name)
	if err != nil {
		return nil, Error{"Can't create file: " + err.Error(), name, []string{"NewWriter"}}
	}
	w.h, err = zstd.NewWriter(w.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		w.f.Close()
		return nil, Error{"Can't set up compression: " + err.Error(), name, []string{"NewWriter"}}
	}
	w.filename = name
	w.writeable = true
	return w, nil
}

// WNext writes one array record.
func (w *Writer) WNext(a dsf.Array) error {
	if !w.writeable {
		return Error{"File not ready to be written", w.filename, []string{"WNext"}}
	}
	if len(a.Data) != a.Rows*a.Cols {
		return Error{fmt.Sprintf("array %s carries %d values for a %dx%d shape", a.Name, len(a.Data), a.Rows, a.Cols), w.filename, []string{"WNext"}}
	}
	if _, err := fmt.Fprintf(w.h, "# %s %d %d %s\n", a.Name, a.Rows, a.Cols, a.Desc); err != nil {
		return Error{err.Error(), w.filename, []string{"WNext"}}
	}
	for i := 0; i < a.Rows; i++ {
		row := a.Data[i*a.Cols : (i+1)*a.Cols]
		strs := make([]string, len(row))
		for j, v := range row {
			strs[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if _, err := fmt.Fprintln(w.h, strings.Join(strs, " ")); err != nil {
			return Error{err.Error(), w.filename, []string{"WNext"}}
		}
	}
	return nil
}

// WAll writes every array of a finished run.
func (w *Writer) WAll(res *dsf.Result) error {
	for _, a := range res.Arrays() {
		if err := w.WNext(a); err != nil {
			err.(dsf.Err).Decorate("WAll")
			return err
		}
	}
	return nil
}

// Close flushes and closes the file. The Writer can't be used afterwards.
func (w *Writer) Close() {
	if w == nil || !w.writeable {
		return
	}
	w.h.Close()
	w.f.Close()
	w.writeable = false
}

// Read recovers every array record from a file written by Writer.
func Read(name string) ([]dsf.Array, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{"Can't open file: " + err.Error(), name, []string{"Read"}}
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, Error{"Can't set up decompression: " + err.Error(), name, []string{"Read"}}
	}
	defer dec.Close()
	var ret []dsf.Array
	scan := bufio.NewScanner(dec)
	scan.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	var cur *dsf.Array
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, Error{"Malformed record header: " + line, name, []string{"Read"}}
			}
			rows, err1 := strconv.Atoi(fields[2])
			cols, err2 := strconv.Atoi(fields[3])
			if err1 != nil || err2 != nil {
				return nil, Error{"Malformed record shape: " + line, name, []string{"Read"}}
			}
			ret = append(ret, dsf.Array{
				Name: fields[1],
				Desc: strings.Join(fields[4:], " "),
				Rows: rows,
				Cols: cols,
				Data: make([]float64, 0, rows*cols),
			})
			cur = &ret[len(ret)-1]
			continue
		}
		if cur == nil {
			return nil, Error{"Data before any record header", name, []string{"Read"}}
		}
		for _, fl := range strings.Fields(line) {
			v, err := strconv.ParseFloat(fl, 64)
			if err != nil {
				return nil, Error{"Can't parse value " + fl + ": " + err.Error(), name, []string{"Read"}}
			}
			cur.Data = append(cur.Data, v)
		}
	}
	if err := scan.Err(); err != nil {
		return nil, Error{err.Error(), name, []string{"Read"}}
	}
	for _, a := range ret {
		if len(a.Data) != a.Rows*a.Cols {
			return nil, Error{fmt.Sprintf("record %s has %d values for a %dx%d shape", a.Name, len(a.Data), a.Rows, a.Cols), name, []string{"Read"}}
		}
	}
	return ret, nil
}

// Error is the error type for the out package. It fulfills dsf.Err.
type Error struct {
	message  string
	filename string
	deco     []string
}

func (err Error) Error() string {
	return fmt.Sprintf("godsf/out file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error.
func (err Error) FileName() string { return err.filename }
