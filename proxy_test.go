package delegate

import (
	"bufio"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type (
	LineReader interface {
		ReadString(delim byte) (string, error)
	}

	// QuietDuck overrides Speak of the Duck it wraps.
	QuietDuck struct {
		Delegator[Duck]
	}

	// ClosingDuck advertises io.Closer in addition to Duck.
	ClosingDuck struct {
		Closing
	}

	// FakeConnection answers Connection with nested composites.
	FakeConnection struct{}

	// Tape reads lines without reporting errors.
	Tape struct {
		lines []string
	}
)

func (q *QuietDuck) Speak() string {
	return "..."
}

func (c *ClosingDuck) AdditionalInterfaces() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[io.Closer]()}
}

func (t *Tape) ReadString(delim byte) string {
	if len(t.lines) == 0 {
		return ""
	}
	line := t.lines[0]
	t.lines = t.lines[1:]
	return line + string(delim)
}

func (FakeConnection) IsClosed() bool {
	return false
}

func (FakeConnection) CreateStatement() Statement {
	stmt, err := Implement[Statement](&struct{ Executor }{})
	if err != nil {
		panic(err)
	}
	return stmt
}

type Executor struct{}

func (Executor) Execute(sql string) bool {
	return strings.HasPrefix(sql, "delete")
}

type lineReaderProxy struct {
	*Proxy
}

var lineReaderReadString = MethodOf[LineReader]("ReadString")

func (d lineReaderProxy) ReadString(a0 byte) (string, error) {
	return Call1Err[string](d.Proxy, lineReaderReadString, a0)
}

func init() {
	Synthesize(func(p *Proxy) LineReader { return lineReaderProxy{p} })
}

type ProxyTestSuite struct {
	suite.Suite
}

func (suite *ProxyTestSuite) TestWrap() {
	suite.Run("Override", func() {
		daffy, err := Wrap[Duck](Daffy{}, DuckImpl{})
		suite.Nil(err)
		suite.Equal("You're despicable", daffy.Speak())
		suite.False(daffy.CanFly())
		suite.True(daffy.CanSwim())
		suite.True(daffy.CanWalk())
		suite.True(daffy.InSeason())
	})

	suite.Run("NilWrapped", func() {
		daffy, err := Wrap[Duck](Daffy{}, nil)
		suite.Nil(err)
		suite.Equal("You're despicable", daffy.Speak())
		suite.PanicsWithError(
			"unsupported capability: no delegate answers delegate.Duck.CanSwim()",
			func() { daffy.CanSwim() })
	})

	suite.Run("Extra", func() {
		closing := &Closing{}
		duck, err := Wrap[Duck](closing, DuckImpl{}, reflect.TypeFor[io.Closer]())
		suite.Nil(err)
		closer, ok := As[io.Closer](duck)
		suite.True(ok)
		suite.Nil(closer.Close())
		suite.True(closing.closed)
	})

	suite.Run("Strict", func() {
		_, err := Build[Duck](Setup().Wrapper(Daffy{}).Options(Strict))
		var verr *VerifyError
		suite.True(errors.As(err, &verr))
	})

	suite.Run("StrictWith", func() {
		_, err := WrapWith[Duck](Setup().Options(Strict), Daffy{}, nil)
		var verr *VerifyError
		suite.True(errors.As(err, &verr))
		suite.Contains(err.Error(), "CanSwim()")
		daffy, err := WrapWith[Duck](Setup().Options(Strict), Daffy{}, DuckImpl{})
		suite.Nil(err)
		suite.False(daffy.CanFly())
	})
}

func (suite *ProxyTestSuite) TestImplement() {
	suite.Run("FromScratch", func() {
		frog, err := Implement[Duck](Daffy{}, Frog{})
		suite.Nil(err)
		suite.Equal("You're despicable", frog.Speak())
		suite.True(frog.CanSwim())
		suite.Panics(func() { frog.InSeason() })
	})

	suite.Run("ErrorResult", func() {
		loader, err := Implement[Loader](FailingLoader{})
		suite.Nil(err)
		_, err = loader.Load("key")
		suite.Same(errLoad, err)
		err = loader.Validate()
		suite.IsType(&UnsupportedCapabilityError{}, err)
	})

	suite.Run("Variadic", func() {
		adder, err := Implement[Adder](Calculator{})
		suite.Nil(err)
		suite.Equal(10, adder.Sum(1, 2, 3, 4))
		suite.Equal(0, adder.Sum())
	})

	suite.Run("Nested", func() {
		conn, err := Implement[Connection](FakeConnection{})
		suite.Nil(err)
		suite.False(conn.IsClosed())
		suite.True(conn.CreateStatement().Execute("delete foo from bar"))
	})

	suite.Run("Strict", func() {
		_, err := ImplementWith[Duck](Setup().Options(Strict), Daffy{}, Frog{})
		var verr *VerifyError
		suite.True(errors.As(err, &verr))
		suite.Contains(err.Error(), "InSeason()")
		_, err = ImplementWith[Duck](Setup().Options(Strict), Impostor{})
		suite.True(errors.As(err, &verr))
		duck, err := ImplementWith[Duck](Setup().Options(Strict), Impostor{}, DuckImpl{})
		suite.Nil(err)
		suite.Equal("I'm a duck", duck.Speak())
	})

	suite.Run("NoSynthesizer", func() {
		_, err := Implement[Walker](Frog{})
		suite.True(errors.Is(err, ErrNoSynthesizer))
		var serr *SynthesisError
		suite.True(errors.As(err, &serr))
		suite.Equal(reflect.TypeFor[Walker](), serr.Iface)
	})
}

func (suite *ProxyTestSuite) TestCoerce() {
	suite.Run("Declared", func() {
		reader := bufio.NewReader(strings.NewReader("Hello, world\nBye"))
		lines, err := Coerce[LineReader](reader)
		suite.Nil(err)
		suite.IsType(lineReaderProxy{}, lines)
		line, err := lines.ReadString('\n')
		suite.Nil(err)
		suite.Equal("Hello, world\n", line)
		target, ok := NewChainOf(reader).Resolve(lineReaderReadString)
		suite.True(ok)
		suite.Equal(PassDeclared, target.Pass)
	})

	suite.Run("Shape", func() {
		tape := &Tape{lines: []string{"Hello, world", "Bye"}}
		target, ok := NewChainOf(tape).Resolve(lineReaderReadString)
		suite.True(ok)
		suite.Equal(PassShape, target.Pass)
		lines, err := Coerce[LineReader](tape)
		suite.Nil(err)
		line, err := lines.ReadString('\n')
		suite.Nil(err)
		suite.Equal("Hello, world\n", line)
		line, err = lines.ReadString('\n')
		suite.Nil(err)
		suite.Equal("Bye\n", line)
	})

	suite.Run("StrictWith", func() {
		lines, err := CoerceWith[LineReader](Setup().Options(Strict), &Tape{})
		suite.Nil(err)
		line, err := lines.ReadString('\n')
		suite.Nil(err)
		suite.Equal("", line)
		_, err = CoerceWith[LineReader](Setup().Options(Strict), Frog{})
		suite.IsType(&VerifyError{}, err)
	})
}

func (suite *ProxyTestSuite) TestAs() {
	suite.Run("Self", func() {
		duck, _ := Implement[Duck](DuckImpl{})
		same, ok := As[Duck](duck)
		suite.True(ok)
		suite.Equal(duck, same)
	})

	suite.Run("Advertised", func() {
		duck, err := Build[Duck](Setup().Wrapper(&ClosingDuck{}).Delegates(DuckImpl{}))
		suite.Nil(err)
		closer, ok := As[io.Closer](duck)
		suite.True(ok)
		suite.Nil(closer.Close())
	})

	suite.Run("NotAdvertised", func() {
		duck, _ := Implement[Duck](DuckImpl{})
		_, ok := As[io.Closer](duck)
		suite.False(ok)
	})

	suite.Run("NotComposite", func() {
		_, ok := As[io.Closer](DuckImpl{})
		suite.False(ok)
	})
}

func (suite *ProxyTestSuite) TestDelegator() {
	suite.Run("Override", func() {
		quiet := &QuietDuck{Delegator[Duck]{Wrapped: DuckImpl{}}}
		duck, err := quiet.Proxy(quiet)
		suite.Nil(err)
		suite.Equal("...", duck.Speak())
		suite.True(duck.CanFly())
		suite.Equal(duck, quiet.Self())
	})

	suite.Run("Cold", func() {
		quiet := &QuietDuck{}
		duck, err := quiet.Proxy(quiet)
		suite.Nil(err)
		suite.Equal("...", duck.Speak())
		suite.Panics(func() { duck.CanWalk() })
	})

	suite.Run("ColdStrict", func() {
		quiet := &QuietDuck{}
		_, err := quiet.Proxy(quiet, Strict)
		suite.NotNil(err)
		suite.Nil(quiet.Self())
	})
}

func (suite *ProxyTestSuite) TestSynthesizers() {
	suite.Run("Unregistered", func() {
		var s Synthesizers
		_, err := s.Synthesize(reflect.TypeFor[Duck](), NewProxy(NewChain()))
		suite.ErrorIs(err, ErrNoSynthesizer)
	})

	suite.Run("WrongType", func() {
		var s Synthesizers
		s.Register(reflect.TypeFor[Duck](), func(p *Proxy) any { return closerProxy{p} })
		_, err := s.Synthesize(reflect.TypeFor[Duck](), NewProxy(NewChain()))
		suite.IsType(&SynthesisError{}, err)
	})

	suite.Run("Result", func() {
		suite.Equal("", Result[string](nil, 0))
		suite.Nil(Result[error]([]any{nil}, 0))
		suite.Panics(func() { Result[string]([]any{1}, 0) })
	})
}

func TestProxyTestSuite(t *testing.T) {
	suite.Run(t, new(ProxyTestSuite))
}
