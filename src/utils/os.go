package utils

import (
	"bufio"
	"io"
	"strings"
)

func ReadLine(r io.Reader) (string, error) {
	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}
