package dhgroups

import (
	"github.com/privacybydesign/dhgroups/safeprime"
	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.StandardLogger()
	safeprime.Logger = Logger
}
