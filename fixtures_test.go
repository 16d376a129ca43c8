package delegate

import (
	"errors"
	"io"
	"strings"
)

type (
	Duck interface {
		Speak() string
		CanWalk() bool
		CanSwim() bool
		CanFly() bool
		InSeason() bool
	}

	Walker interface {
		CanWalk() bool
	}

	Swimmer interface {
		CanSwim() bool
	}

	Amphibian interface {
		Walker
		Swimmer
	}

	Echoer interface {
		Echo(msg string) string
	}

	Adder interface {
		Sum(xs ...int) int
	}

	Loader interface {
		Load(key string) (string, error)
		Validate() error
	}

	Statement interface {
		Execute(sql string) bool
	}

	Connection interface {
		IsClosed() bool
		CreateStatement() Statement
	}

	// DuckImpl implements Duck.
	DuckImpl struct{}

	// Daffy overrides some Duck methods.
	Daffy struct{}

	// Override answers Speak only.
	Override struct{}

	// Frog walks and swims.
	Frog struct{}

	// PartialDuck declares Duck by embedding it.
	PartialDuck struct {
		Duck
	}

	// Impostor overrides Speak of the Duck it embeds.
	Impostor struct {
		Duck
	}

	// Node embeds itself.
	Node struct {
		*Node
		Swimmer
	}

	AnyEchoer struct{}
	IntEchoer struct{}
	LoudEcho  struct{}
	Calculator struct{}
	Mute       struct{}

	Panicky     struct{}
	PanickyEcho struct{}

	FailingLoader struct{}
	LooseLoader   struct{}

	Closing struct {
		closed bool
	}

	Counter struct {
		count int
	}

	hidden struct{}
)

var errLoad = errors.New("load failed")

// DuckImpl

func (DuckImpl) Speak() string  { return "Quack!" }
func (DuckImpl) CanWalk() bool  { return true }
func (DuckImpl) CanSwim() bool  { return true }
func (DuckImpl) CanFly() bool   { return true }
func (DuckImpl) InSeason() bool { return true }

// Daffy

func (Daffy) Speak() string { return "You're despicable" }
func (Daffy) CanFly() bool  { return false }

// Impostor

func (Impostor) Speak() string { return "I'm a duck" }

// Override

func (*Override) Speak() string { return "override" }

// Frog

func (Frog) CanWalk() bool { return true }
func (Frog) CanSwim() bool { return true }

// AnyEchoer

func (AnyEchoer) Echo(msg any) any { return msg }

// IntEchoer

func (IntEchoer) Echo(n int) int { return n }

// LoudEcho

func (LoudEcho) Echo(msg string) int { return len(msg) }

// Calculator

func (Calculator) Sum(xs ...int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

// Mute

func (Mute) Echo(msg string) string { return strings.Repeat(".", len(msg)) }

// Panicky

func (Panicky) Speak() string { panic("boom") }

func (PanickyEcho) Echo(msg any) any { panic("echo failed") }

// FailingLoader

func (FailingLoader) Load(key string) (string, error) { return "", errLoad }

func (LooseLoader) Load(key any) (string, error) { return "", errLoad }

// Closing

func (c *Closing) Close() error {
	c.closed = true
	return nil
}

// Counter

func (c *Counter) Inc() int {
	c.count++
	return c.count
}

// hidden

func (hidden) speak() string { return "hidden" }


// Forwarding types as generated by delegategen.

type duckProxy struct {
	*Proxy
}

var (
	duckSpeak    = MethodOf[Duck]("Speak")
	duckCanWalk  = MethodOf[Duck]("CanWalk")
	duckCanSwim  = MethodOf[Duck]("CanSwim")
	duckCanFly   = MethodOf[Duck]("CanFly")
	duckInSeason = MethodOf[Duck]("InSeason")
)

func (d duckProxy) Speak() string  { return Call1[string](d.Proxy, duckSpeak) }
func (d duckProxy) CanWalk() bool  { return Call1[bool](d.Proxy, duckCanWalk) }
func (d duckProxy) CanSwim() bool  { return Call1[bool](d.Proxy, duckCanSwim) }
func (d duckProxy) CanFly() bool   { return Call1[bool](d.Proxy, duckCanFly) }
func (d duckProxy) InSeason() bool { return Call1[bool](d.Proxy, duckInSeason) }

type closerProxy struct {
	*Proxy
}

var closerClose = MethodOf[io.Closer]("Close")

func (d closerProxy) Close() error { return CallErr(d.Proxy, closerClose) }

type loaderProxy struct {
	*Proxy
}

var (
	loaderLoad     = MethodOf[Loader]("Load")
	loaderValidate = MethodOf[Loader]("Validate")
)

func (d loaderProxy) Load(a0 string) (string, error) { return Call1Err[string](d.Proxy, loaderLoad, a0) }
func (d loaderProxy) Validate() error                { return CallErr(d.Proxy, loaderValidate) }

type statementProxy struct {
	*Proxy
}

var statementExecute = MethodOf[Statement]("Execute")

func (d statementProxy) Execute(a0 string) bool { return Call1[bool](d.Proxy, statementExecute, a0) }

type connectionProxy struct {
	*Proxy
}

var (
	connectionIsClosed        = MethodOf[Connection]("IsClosed")
	connectionCreateStatement = MethodOf[Connection]("CreateStatement")
)

func (d connectionProxy) IsClosed() bool { return Call1[bool](d.Proxy, connectionIsClosed) }
func (d connectionProxy) CreateStatement() Statement {
	return Call1[Statement](d.Proxy, connectionCreateStatement)
}

type adderProxy struct {
	*Proxy
}

var adderSum = MethodOf[Adder]("Sum")

func (d adderProxy) Sum(a0 ...int) int { return Call1[int](d.Proxy, adderSum, a0) }

func init() {
	Synthesize(func(p *Proxy) Duck { return duckProxy{p} })
	Synthesize(func(p *Proxy) io.Closer { return closerProxy{p} })
	Synthesize(func(p *Proxy) Loader { return loaderProxy{p} })
	Synthesize(func(p *Proxy) Statement { return statementProxy{p} })
	Synthesize(func(p *Proxy) Connection { return connectionProxy{p} })
	Synthesize(func(p *Proxy) Adder { return adderProxy{p} })
}
