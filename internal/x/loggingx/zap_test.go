package loggingx_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/operaton/operaton-sub059/internal/x/loggingx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ = Describe("func Zap()", func() {
	It("logs messages at the info level", func() {
		core, logs := observer.New(zapcore.InfoLevel)
		logger := Zap(zap.New(core))

		logger.Log("<%s>", "formatted")
		logger.LogString("<%s>")

		entries := logs.AllUntimed()
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Level).To(Equal(zapcore.InfoLevel))
		Expect(entries[0].Message).To(Equal("<formatted>"))
		Expect(entries[1].Message).To(Equal("<%s>"))
	})

	It("logs debug messages at the debug level", func() {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := Zap(zap.New(core))

		Expect(logger.IsDebug()).To(BeTrue())

		logger.Debug("<%d>", 1)
		logger.DebugString("<2>")

		entries := logs.AllUntimed()
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Level).To(Equal(zapcore.DebugLevel))
		Expect(entries[0].Message).To(Equal("<1>"))
		Expect(entries[1].Message).To(Equal("<2>"))
	})

	It("discards debug messages when the debug level is disabled", func() {
		core, logs := observer.New(zapcore.InfoLevel)
		logger := Zap(zap.New(core))

		Expect(logger.IsDebug()).To(BeFalse())

		logger.Debug("<debug>")
		logger.DebugString("<debug>")

		Expect(logs.Len()).To(BeZero())
	})
})

var _ = Describe("func WithPrefix()", func() {
	It("adds the prefix to each message", func() {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := WithPrefix(Zap(zap.New(core)), "[%s] ", "prefix")

		logger.Log("<%s>", "log")
		logger.Debug("100%%")
		logger.LogString("<string>")

		entries := logs.AllUntimed()
		Expect(entries).To(HaveLen(3))
		Expect(entries[0].Message).To(Equal("[prefix] <log>"))
		Expect(entries[1].Message).To(Equal("[prefix] 100%"))
		Expect(entries[2].Message).To(Equal("[prefix] <string>"))
	})
})
