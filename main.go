package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blang/semver/v4"
	"github.com/rs/zerolog"

	"huffc/huffman"
)

var (
	flagDecompress = flag.Bool("d", false, "decompress")
	flagIn         = flag.String("i", "", "input file (required)")
	flagOut        = flag.String("o", "", "output file")
	flagNoOut      = flag.Bool("no_out", false, "no output")
	flagReport     = flag.Bool("r", false, "report compression ratio")
	flagVersion    = flag.Bool("version", false, "report executable version")
)

const (
	extension  = ".huff"
	versionStr = "0.1.0"
)

// version is parsed once at startup so a malformed versionStr constant
// fails fast instead of being silently printed as-is.
var version = semver.MustParse(versionStr)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

func quitF(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
	os.Exit(1)
}

func assertNoError(err error) {
	if err != nil {
		quitF("%v", err)
	}
}

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Println("huffc v" + version.String())
		os.Exit(0)
	}

	if *flagIn == "" {
		quitF("no input file specified")
	}

	in, err := os.ReadFile(*flagIn)
	assertNoError(err)

	if *flagOut != "" && *flagNoOut {
		quitF("options -no_out and -o are mutually exclusive")
	}

	if *flagOut == "" { // construct a file name from the input name
		if *flagDecompress {
			if strings.HasSuffix(*flagIn, extension) {
				*flagOut = (*flagIn)[:len(*flagIn)-len(extension)]
			} else {
				*flagOut = *flagIn + ".decompressed"
			}
		} else {
			*flagOut = *flagIn + extension
		}
	}

	var (
		out        []byte
		lenC, lenD int
	)
	if *flagDecompress {
		out, err = huffman.Decode(bytes.NewReader(in))
		assertNoError(err)
		lenC, lenD = len(in), len(out)
	} else {
		out, err = huffman.Encode(bytes.NewReader(in))
		assertNoError(err)
		lenC, lenD = len(out), len(in)
	}

	if *flagNoOut {
		*flagOut = ""
	} else {
		assertNoError(os.WriteFile(*flagOut, out, 0o600))
	}

	log.Info().
		Str("in", *flagIn).
		Str("out", *flagOut).
		Int("in_bytes", len(in)).
		Int("out_bytes", len(out)).
		Bool("decompress", *flagDecompress).
		Msg("done")

	if *flagReport {
		ratioPct := lenC * 100 / lenD
		fmt.Printf("%dB -> %dB compression ratio %d.%02d\n", lenC, lenD, ratioPct/100, ratioPct%100)
	}
}
