package transform_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/core/ports/mocks"
	"go.trai.ch/morph/internal/engine/transform"
	"go.uber.org/mock/gomock"
)

type chainFixture struct {
	unzip, compile         *mocks.MockTransformer
	unzipExec, compileExec *mocks.MockTransformExecutor
	chain                  *transform.Chain
}

func newChainFixture(t *testing.T, ctrl *gomock.Controller) chainFixture {
	t.Helper()
	f := chainFixture{
		unzip:       newTransformer(ctrl, "Unzip", "aaaa"),
		compile:     newTransformer(ctrl, "Compile", "bbbb"),
		unzipExec:   mocks.NewMockTransformExecutor(ctrl),
		compileExec: mocks.NewMockTransformExecutor(ctrl),
	}
	first, err := transform.NewStep(f.unzip, f.unzipExec, false)
	require.NoError(t, err)
	second, err := transform.NewStep(f.compile, f.compileExec, false)
	require.NoError(t, err)
	f.chain, err = transform.NewChain(first, second)
	require.NoError(t, err)
	return f
}

func TestNewChain_Validation(t *testing.T) {
	_, err := transform.NewChain()
	require.ErrorIs(t, err, domain.ErrEmptyChain)

	_, err = transform.NewChain(nil)
	assert.EqualError(t, err, domain.ErrNilTransformation.Error())

	var step *transform.Step
	_, err = transform.NewChain(step)
	assert.EqualError(t, err, domain.ErrNilTransformation.Error())
}

func TestChain_Apply_HandsOffOutputs(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newChainFixture(t, ctrl)

	in := domain.NewSubject("lib", "lib.zip")
	handoff := in.WithFiles([]string{"x.class", "y.class"})
	gomock.InOrder(
		f.unzipExec.EXPECT().Invoke(gomock.Any(), f.unzip, "lib.zip", in).Return([]string{"x.class", "y.class"}, nil),
		f.compileExec.EXPECT().Invoke(gomock.Any(), f.compile, "x.class", handoff).Return([]string{"x.o"}, nil),
		f.compileExec.EXPECT().Invoke(gomock.Any(), f.compile, "y.class", handoff).Return([]string{"y.o"}, nil),
	)

	out := f.chain.Apply(context.Background(), in)

	require.False(t, out.IsFailed())
	assert.Equal(t, []string{"x.o", "y.o"}, out.Files())
}

func TestChain_Apply_ShortCircuitsOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newChainFixture(t, ctrl)

	cause := errors.New("bad zip")
	in := domain.NewSubject("lib", "lib.zip")
	f.unzipExec.EXPECT().Invoke(gomock.Any(), f.unzip, "lib.zip", in).Return(nil, cause)

	out := f.chain.Apply(context.Background(), in)

	require.True(t, out.IsFailed())
	assert.ErrorIs(t, out.Failure(), cause)
}

func TestChain_Apply_FailedInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newChainFixture(t, ctrl)

	in := domain.NewSubject("lib", "lib.zip").WithFailure(errors.New("download failed"))

	out := f.chain.Apply(context.Background(), in)

	assert.True(t, out.Equal(in))
}

func TestChain_RequiresDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := mocks.NewMockTransformExecutor(ctrl)

	plain, err := transform.NewStep(newTransformer(ctrl, "Unzip", "aaaa"), exec, false)
	require.NoError(t, err)
	needy, err := transform.NewStep(newTransformer(ctrl, "Link", "cccc"), exec, true)
	require.NoError(t, err)

	without, err := transform.NewChain(plain, plain)
	require.NoError(t, err)
	with, err := transform.NewChain(plain, needy)
	require.NoError(t, err)

	assert.False(t, without.RequiresDependencies())
	assert.True(t, with.RequiresDependencies())
}

func TestChain_HasCachedResult(t *testing.T) {
	t.Run("folds cached outputs into next step", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newChainFixture(t, ctrl)

		f.unzipExec.EXPECT().CachedResult("lib.zip", f.unzip).Return([]string{"x.class"}, true)
		f.compileExec.EXPECT().HasCachedResult("x.class", f.compile).Return(true)

		assert.True(t, f.chain.HasCachedResult(domain.NewSubject("lib", "lib.zip")))
	})

	t.Run("stops at first uncached step", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newChainFixture(t, ctrl)

		f.unzipExec.EXPECT().CachedResult("lib.zip", f.unzip).Return(nil, false)

		assert.False(t, f.chain.HasCachedResult(domain.NewSubject("lib", "lib.zip")))
	})

	t.Run("last step uncached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newChainFixture(t, ctrl)

		f.unzipExec.EXPECT().CachedResult("lib.zip", f.unzip).Return([]string{"x.class"}, true)
		f.compileExec.EXPECT().HasCachedResult("x.class", f.compile).Return(false)

		assert.False(t, f.chain.HasCachedResult(domain.NewSubject("lib", "lib.zip")))
	})

	t.Run("failed subject", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newChainFixture(t, ctrl)

		assert.True(t, f.chain.HasCachedResult(domain.NewSubject("lib").WithFailure(errors.New("x"))))
	})
}

func TestChain_Nested(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newChainFixture(t, ctrl)

	linker := newTransformer(ctrl, "Link", "cccc")
	linkExec := mocks.NewMockTransformExecutor(ctrl)
	link, err := transform.NewStep(linker, linkExec, true)
	require.NoError(t, err)

	outer, err := transform.NewChain(f.chain, link)
	require.NoError(t, err)

	var names []string
	outer.VisitSteps(func(s *transform.Step) { names = append(names, s.String()) })
	assert.Equal(t, []string{"Unzip@aaaa", "Compile@bbbb", "Link@cccc"}, names)
	assert.Equal(t, 3, outer.Len())
	assert.Equal(t, "Unzip@aaaa -> Compile@bbbb -> Link@cccc", outer.String())
	assert.True(t, outer.RequiresDependencies())

	f.unzipExec.EXPECT().CachedResult("lib.zip", f.unzip).Return([]string{"x.class"}, true)
	f.compileExec.EXPECT().CachedResult("x.class", f.compile).Return([]string{"x.o"}, true)
	linkExec.EXPECT().HasCachedResult("x.o", linker).Return(true)

	assert.True(t, outer.HasCachedResult(domain.NewSubject("lib", "lib.zip")))
}

func TestCompose(t *testing.T) {
	ctrl := gomock.NewController(t)
	step := newStep(t, newTransformer(ctrl, "Unzip", "aaaa"), mocks.NewMockTransformExecutor(ctrl))

	single, err := transform.Compose(step)
	require.NoError(t, err)
	assert.Same(t, step, single)

	multi, err := transform.Compose(step, step)
	require.NoError(t, err)
	assert.IsType(t, &transform.Chain{}, multi)

	_, err = transform.Compose()
	require.ErrorIs(t, err, domain.ErrEmptyChain)
}
