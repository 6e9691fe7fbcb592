package otflocode

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/nsip/otf-locode/internal/transform"
	"github.com/nsip/otf-locode/internal/util"
)

type Option func(*OtfLocodeService) error

//
// apply all supplied options to the service
// returns any error encountered while applying the options
//
func (srvc *OtfLocodeService) setOptions(options ...Option) error {
	for _, opt := range options {
		if err := opt(srvc); err != nil {
			return err
		}
	}
	return nil
}

//
// a name for this service instance,
// generated if not supplied
//
func Name(name string) Option {
	return func(s *OtfLocodeService) error {
		if name != "" {
			s.serviceName = name
			return nil
		}
		s.serviceName = util.GenerateName()
		return nil
	}
}

//
// a unique id for this service instance,
// generated if not supplied
//
func ID(id string) Option {
	return func(s *OtfLocodeService) error {
		if id != "" {
			s.serviceID = id
			return nil
		}
		s.serviceID = util.GenerateID()
		return nil
	}
}

//
// host address the service listens on
//
func Host(hostName string) Option {
	return func(s *OtfLocodeService) error {
		if hostName != "" {
			s.serviceHost = hostName
			return nil
		}
		return errors.New("Host() option cannot be empty string")
	}
}

//
// port the service listens on,
// a free port is chosen if 0
//
func Port(port int) Option {
	return func(s *OtfLocodeService) error {
		if port != 0 {
			s.servicePort = port
			return nil
		}
		var err error
		s.servicePort, err = util.AvailablePort()
		return err
	}
}

//
// location of the Foundational LO bank workbook
//
func FoundationalBank(src string) Option {
	return func(s *OtfLocodeService) error {
		if src == "" {
			return errors.New("FoundationalBank() option cannot be empty string")
		}
		s.sources.Foundational = src
		return nil
	}
}

//
// location of the Preparatory LO bank workbook
//
func PreparatoryBank(src string) Option {
	return func(s *OtfLocodeService) error {
		if src == "" {
			return errors.New("PreparatoryBank() option cannot be empty string")
		}
		s.sources.Preparatory = src
		return nil
	}
}

//
// location of the output template workbook
//
func Template(src string) Option {
	return func(s *OtfLocodeService) error {
		if src == "" {
			return errors.New("Template() option cannot be empty string")
		}
		s.sources.Template = src
		return nil
	}
}

//
// json file overriding the template column mapping,
// the built-in mapping is used if empty
//
func ColumnMap(path string) Option {
	return func(s *OtfLocodeService) error {
		if path == "" {
			s.sources.Columns = nil
			return nil
		}
		pairs, err := transform.LoadColumnMapping(path)
		if err != nil {
			return err
		}
		s.sources.Columns = pairs
		return nil
	}
}

//
// folder processed workbooks are written to before
// being handed back; created if missing
//
func OutputDir(dir string) Option {
	return func(s *OtfLocodeService) error {
		if dir == "" {
			dir = filepath.Join(os.TempDir(), "otf-locode")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "cannot create output folder")
		}
		s.outputDir = dir
		return nil
	}
}
