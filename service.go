package otflocode

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/nsip/otf-locode/internal/reference"
	"github.com/nsip/otf-locode/internal/transform"
	"github.com/nsip/otf-locode/internal/util"
)

type OtfLocodeService struct {
	// embedded web server to handle submissions
	e *echo.Echo
	// the unique name of this service when running multiple instances
	serviceName string
	// the unique id of this service when running multiple instances
	serviceID string
	// the host address this service instance is running on
	serviceHost string
	// the port that this service instance is running on
	servicePort int
	// LO banks, template and column mapping
	sources Sources
	// where processed workbooks are written before download
	outputDir string
}

//
// Form fields sent to the web service.
// Params can be provided as form components (the usual case,
// alongside the uploaded workbook), json payload or query params
//
type AssignRequest struct {
	//
	// which LO bank to match against:
	// "Foundational LO" or "Preparatory LO"
	//
	LOType string `json:"loType" form:"loType" query:"loType"`
	//
	// Level_CourseNo_ModuleNo_SubUnitNo, e.g. FDT_7_2_10.
	// names the output file and selects the listed objectives
	//
	FileName string `json:"fileName" form:"fileName" query:"fileName"`
	//
	// spreadsheet rows holding the questions to tag, e.g. 3-38
	//
	QuestionRange string `json:"questionRange" form:"questionRange" query:"questionRange"`
}

//
// create a new service instance
//
func New(options ...Option) (*OtfLocodeService, error) {

	srvc := OtfLocodeService{
		serviceHost: "localhost",
		sources:     DefaultSources(),
	}

	if err := srvc.setOptions(options...); err != nil {
		return nil, err
	}
	if err := srvc.setDefaults(); err != nil {
		return nil, err
	}

	srvc.e = echo.New()
	srvc.e.HideBanner = true
	srvc.e.Logger.SetLevel(log.INFO)
	// add pingable method to know we're up
	srvc.e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, "OK")
	})
	// tag and download
	srvc.e.POST("/assign", srvc.buildAssignHandler())
	// tag and show the tagged question table
	srvc.e.POST("/preview", srvc.buildPreviewHandler())
	// objectives listed for a file name
	srvc.e.GET("/objectives", srvc.buildObjectivesHandler())

	return &srvc, nil
}

//
// fill in anything the options left unset
//
func (s *OtfLocodeService) setDefaults() error {
	defaults := []Option{}
	if s.serviceName == "" {
		defaults = append(defaults, Name(""))
	}
	if s.serviceID == "" {
		defaults = append(defaults, ID(""))
	}
	if s.servicePort == 0 {
		defaults = append(defaults, Port(0))
	}
	if s.outputDir == "" {
		defaults = append(defaults, OutputDir(""))
	}
	return s.setOptions(defaults...)
}

//
// start the service running
//
func (s *OtfLocodeService) Start() {

	address := fmt.Sprintf("%s:%d", s.serviceHost, s.servicePort)
	go func(addr string) {
		if err := s.e.Start(addr); err != nil && err != http.ErrServerClosed {
			s.e.Logger.Info("error starting server: ", err, ", shutting down...")
			// attempt clean shutdown by raising sig int
			p, _ := os.FindProcess(os.Getpid())
			p.Signal(os.Interrupt)
		}
	}(address)

}

//
// creates the main assign method
// requires a multipart form with:
// loType: Foundational LO | Preparatory LO
// fileName: Level_Course_Module_SubUnit key
// questionRange: start-end rows to tag
// file: the question workbook (xlsx)
//
// responds with <fileName>_Processed.xlsx as an attachment
//
func (s *OtfLocodeService) buildAssignHandler() echo.HandlerFunc {

	return func(c echo.Context) error {
		outcome, err := s.process(c)
		if err != nil {
			return err
		}

		// each submission writes into its own folder, removed once sent
		dir := filepath.Join(s.outputDir, util.GenerateID())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		defer os.RemoveAll(dir)

		path, err := outcome.Save(dir)
		if err != nil {
			c.Logger().Error("save error: ", err)
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		return c.Attachment(path, filepath.Base(path))
	}
}

//
// same input as assign; responds with the tagged
// question table as json instead of a workbook
//
func (s *OtfLocodeService) buildPreviewHandler() echo.HandlerFunc {

	sName := s.serviceName
	sID := s.serviceID

	return func(c echo.Context) error {
		outcome, err := s.process(c)
		if err != nil {
			return err
		}

		previewResponse := map[string]interface{}{
			"fileName":          outcome.FileName,
			"loType":            outcome.Bank.String(),
			"outputName":        transform.OutputName(outcome.FileName),
			"objectives":        nonNil(outcome.Objectives),
			"stats":             outcome.Stats,
			"columns":           outcome.Processed.Columns,
			"rows":              nonNilRows(outcome.Processed.Rows),
			"locodeServiceID":   sID,
			"locodeServiceName": sName,
		}

		return c.JSON(http.StatusOK, previewResponse)
	}
}

//
// lists the objectives the selected LO bank records
// for a file name
// query params: loType, fileName
//
func (s *OtfLocodeService) buildObjectivesHandler() echo.HandlerFunc {

	return func(c echo.Context) error {
		req := &AssignRequest{}
		if err := c.Bind(req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if req.FileName == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "must supply a value for fileName")
		}

		bank, err := ParseBank(req.LOType)
		if err != nil {
			return httpError(err)
		}

		wb, err := reference.Open(s.sources.Source(bank))
		if err != nil {
			c.Logger().Error("reference error: ", err)
			return httpError(err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"fileName":   req.FileName,
			"loType":     bank.String(),
			"objectives": nonNil(wb.Objectives(req.FileName)),
		})
	}
}

//
// binds the submission form and runs the pipeline
//
func (s *OtfLocodeService) process(c echo.Context) (*Outcome, error) {

	req := &AssignRequest{}
	if err := c.Bind(req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.FileName == "" || req.QuestionRange == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "must supply values for fileName & questionRange")
	}

	bank, err := ParseBank(req.LOType)
	if err != nil {
		return nil, httpError(err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "must upload the question workbook as file")
	}
	upload, err := openUpload(fh)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer upload.Close()

	c.Logger().Infof("submission %s (%s) rows %s from %s", req.FileName, bank, req.QuestionRange, fh.Filename)

	outcome, err := Process(s.sources, Submission{
		Bank:          bank,
		FileName:      req.FileName,
		QuestionRange: req.QuestionRange,
		Questions:     upload,
	})
	if err != nil {
		c.Logger().Error("processing error: ", err)
		return nil, httpError(err)
	}

	c.Logger().Infof("submission %s: %d rows, %d matched, %d unmatched",
		req.FileName, outcome.Stats.Rows, outcome.Stats.Matched, outcome.Stats.Unmatched)

	return outcome, nil
}

func openUpload(fh *multipart.FileHeader) (multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "cannot read uploaded file")
	}
	return f, nil
}

//
// maps pipeline errors onto http status codes;
// the error text goes back to the user as is
//
func httpError(err error) error {
	var fe *transform.FormatError
	switch {
	case errors.As(err, &fe), errors.Is(err, ErrInvalidSubmission):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, reference.ErrMissingSheet), errors.Is(err, reference.ErrShortSheet):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilRows(rows [][]string) [][]string {
	if rows == nil {
		return [][]string{}
	}
	return rows
}

//
// shut the server down gracefully
//
func (s *OtfLocodeService) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.e.Shutdown(ctx); err != nil {
		fmt.Println("could not shut down server cleanly: ", err)
		s.e.Logger.Fatal(err)
	}

}

func (s *OtfLocodeService) PrintConfig() {

	fmt.Println("\n\tOTF-Locode Service Configuration")
	fmt.Println("\t---------------------------------")

	s.printID()
	s.printSourcesConfig()

}

func (s *OtfLocodeService) printID() {
	fmt.Println("\tservice name:\t\t", s.serviceName)
	fmt.Println("\tservice ID:\t\t", s.serviceID)
	fmt.Println("\tservice host:\t\t", s.serviceHost)
	fmt.Println("\tservice port:\t\t", s.servicePort)
}

func (s *OtfLocodeService) printSourcesConfig() {
	fmt.Println("\tfoundational bank:\t", s.sources.Foundational)
	fmt.Println("\tpreparatory bank:\t", s.sources.Preparatory)
	fmt.Println("\ttemplate:\t\t", s.sources.Template)
	fmt.Println("\tmapped columns:\t\t", len(s.sources.columns()))
	fmt.Println("\toutput folder:\t\t", s.outputDir)
}
