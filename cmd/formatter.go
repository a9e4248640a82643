/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

package cmd

import (
	"bytes"

	log "github.com/sirupsen/logrus"
)

// PrefixFormatter renders log entries as a level-letter prefix followed
// by the message, with no timestamp: "E: ", "W: ", "I: ", "D: ".
type PrefixFormatter struct{}

func (f *PrefixFormatter) Format(entry *log.Entry) ([]byte, error) {
	var b bytes.Buffer

	switch entry.Level {
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		b.WriteString("E: ")
	case log.WarnLevel:
		b.WriteString("W: ")
	case log.InfoLevel:
		b.WriteString("I: ")
	default:
		b.WriteString("D: ")
	}

	b.WriteString(entry.Message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}
