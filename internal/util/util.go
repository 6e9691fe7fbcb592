package util

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/nats-io/nuid"
	"github.com/pkg/errors"
	hashids "github.com/speps/go-hashids"
)

var (
	once      sync.Once
	netClient *http.Client
)

//
// create a singleton http client so that remote
// reference workbooks reuse connections
//
func newNetClient() *http.Client {
	once.Do(func() {
		var netTransport = &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 5 * time.Second,
		}
		netClient = &http.Client{
			// workbooks are larger than the small json
			// payloads this client was first sized for
			Timeout:   time.Second * 30,
			Transport: netTransport,
		}
	})

	return netClient
}

//
// generate a short readable service name - hashid in this case
//
func GenerateName() string {

	name := "locode"

	number0, err := rand.Int(rand.Reader, big.NewInt(10000000))
	if err != nil {
		log.Warn("error generating random name seed: ", err)
		return name
	}

	hd := hashids.NewData()
	hd.Salt = "otf-locode random name generator"
	hd.MinLength = 5
	h, err := hashids.NewWithData(hd)
	if err != nil {
		log.Warn("error auto-generating name: ", err)
		return name
	}
	e, err := h.EncodeInt64([]int64{number0.Int64()})
	if err != nil {
		log.Warn("error encoding auto-generated name: ", err)
		return name
	}

	return e
}

//
// generate a unique id - nuid in this case.
// used for service ids and per-submission output folders.
//
func GenerateID() string {

	return nuid.Next()

}

//
// Fetches a remote resource (typically a reference or template
// workbook published on a content server) and returns the payload.
//
// url - absolute http(s) address
// header - map of headers to include in request
//
func Fetch(url string, header map[string]string) ([]byte, error) {

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot build request for %s", url)
	}

	for key, value := range header {
		req.Header.Add(key, value)
	}

	res, err := newNetClient().Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot fetch %s", url)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.New(fmt.Sprintf("fetch of %s failed with response: %d", url, res.StatusCode))
	}

	respByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read Fetch response")
	}

	return respByte, nil
}

//
// small utility function deferred in the pipeline stages
// to log how long each one took.
//
func TimeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	log.Infof("%s took %s", name, elapsed.Truncate(time.Millisecond).String())
}

//
// find an available tcp port
//
func AvailablePort() (int, error) {

	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, errors.Wrap(err, "cannot acquire a tcp port")
	}
	defer listener.Close()

	return listener.Addr().(*net.TCPAddr).Port, nil

}
