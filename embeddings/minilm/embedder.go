// Package minilm provides local all-MiniLM-L6-v2 sentence embeddings on top
// of the ort binding, with a pre-bound inference pipeline per batch size so
// repeated embedding calls stay off the allocator.
package minilm

import (
	goerrors "errors"
	"math"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/amikos-tech/ort-go/embeddings/internal/ortutil"
	"github.com/amikos-tech/ort-go/ort"
	tokenizers "github.com/amikos-tech/pure-tokenizers"
)

const (
	// DefaultSequenceLength matches the reference all-MiniLM-L6-v2 pipeline.
	DefaultSequenceLength = 256
	// OutputEmbeddingDimension is the all-MiniLM-L6-v2 embedding width.
	OutputEmbeddingDimension = 384

	poolingDenominatorEpsilon = float32(1e-9)
	l2NormEpsilon             = float32(1e-12)
)

const (
	defaultInputIDsName      = "input_ids"
	defaultAttentionMaskName = "attention_mask"
	// #nosec G101 -- ONNX input identifier string, not credential material.
	defaultTokenTypeIDsName = "token_type_ids"
	defaultOutputName       = "last_hidden_state"
)

// Option customizes embedder initialization.
type Option func(*config) error

type config struct {
	sequenceLength       int
	tokenizerLibraryPath string
	inputIDsName         string
	attentionMaskName    string
	tokenTypeIDsName     string
	outputName           string
}

func defaultConfig() config {
	return config{
		sequenceLength:    DefaultSequenceLength,
		inputIDsName:      defaultInputIDsName,
		attentionMaskName: defaultAttentionMaskName,
		tokenTypeIDsName:  defaultTokenTypeIDsName,
		outputName:        defaultOutputName,
	}
}

// WithSequenceLength sets truncation and fixed padding length.
func WithSequenceLength(length int) Option {
	return func(cfg *config) error {
		if length <= 0 {
			return errors.Errorf("sequence length must be > 0, got %d", length)
		}
		cfg.sequenceLength = length
		return nil
	}
}

// WithTokenizerLibraryPath sets the explicit pure-tokenizers shared library
// path.
func WithTokenizerLibraryPath(path string) Option {
	return func(cfg *config) error {
		if path == "" {
			return errors.New("tokenizer library path cannot be empty")
		}
		cfg.tokenizerLibraryPath = path
		return nil
	}
}

// WithInputOutputNames overrides the model's input and output names.
func WithInputOutputNames(inputIDsName, attentionMaskName, tokenTypeIDsName, outputName string) Option {
	return func(cfg *config) error {
		if inputIDsName == "" || attentionMaskName == "" || tokenTypeIDsName == "" || outputName == "" {
			return errors.New("input/output names cannot be empty")
		}
		cfg.inputIDsName = inputIDsName
		cfg.attentionMaskName = attentionMaskName
		cfg.tokenTypeIDsName = tokenTypeIDsName
		cfg.outputName = outputName
		return nil
	}
}

// Embedder embeds text into deterministic 384-d vectors. It does not own the
// environment; the caller creates one, keeps it alive for the embedder's
// lifetime, and destroys it after Close.
type Embedder struct {
	env            *ort.Environment
	modelPath      string
	sequenceLength int
	cfg            config
	tokenizer      *tokenizers.Tokenizer

	runMu           sync.Mutex
	pipelinesBySize map[int]*batchPipeline
}

// batchPipeline is the fixed-size inference state for one batch size: token
// buffers, the tensors viewing them, and a session with the tensors
// pre-bound so Run performs no per-call marshalling.
type batchPipeline struct {
	inputIDs      []int64
	attentionMask []int64
	tokenTypeIDs  []int64

	inputIDsTensor      *ort.Tensor[int64]
	attentionMaskTensor *ort.Tensor[int64]
	tokenTypeIDsTensor  *ort.Tensor[int64]
	outputTensor        *ort.Tensor[float32]

	session *ort.Session
	binding *ort.IoBinding
}

// NewEmbedder creates an all-MiniLM-L6-v2 embedder. modelPath must point to
// the local ONNX model file and tokenizerPath to the local tokenizer.json.
func NewEmbedder(env *ort.Environment, modelPath string, tokenizerPath string, opts ...Option) (*Embedder, error) {
	if env == nil {
		return nil, errors.New("environment cannot be nil")
	}
	if modelPath == "" {
		return nil, errors.New("model path cannot be empty")
	}
	if tokenizerPath == "" {
		return nil, errors.New("tokenizer path cannot be empty")
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, errors.Wrapf(err, "model path %q is not usable", modelPath)
	}
	if _, err := os.Stat(tokenizerPath); err != nil {
		return nil, errors.Wrapf(err, "tokenizer path %q is not usable", tokenizerPath)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	tokenizerOpts := []tokenizers.TokenizerOption{
		tokenizers.WithTruncation(
			uintptr(cfg.sequenceLength),
			tokenizers.TruncationDirectionRight,
			tokenizers.TruncationStrategyLongestFirst,
		),
		tokenizers.WithPadding(true, tokenizers.PaddingStrategy{
			Tag:       tokenizers.PaddingStrategyFixed,
			FixedSize: uintptr(cfg.sequenceLength),
		}),
	}
	if cfg.tokenizerLibraryPath != "" {
		tokenizerOpts = append(tokenizerOpts, tokenizers.WithLibraryPath(cfg.tokenizerLibraryPath))
	}

	tokenizer, err := tokenizers.FromFile(tokenizerPath, tokenizerOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load tokenizer")
	}

	return &Embedder{
		env:             env,
		modelPath:       modelPath,
		sequenceLength:  cfg.sequenceLength,
		cfg:             cfg,
		tokenizer:       tokenizer,
		pipelinesBySize: make(map[int]*batchPipeline),
	}, nil
}

// Close releases all pipelines and the tokenizer. The environment stays with
// the caller.
func (e *Embedder) Close() error {
	if e == nil {
		return nil
	}

	e.runMu.Lock()
	defer e.runMu.Unlock()

	var err error
	for batchSize, pipeline := range e.pipelinesBySize {
		if destroyErr := pipeline.destroy(); destroyErr != nil {
			err = goerrors.Join(err, errors.Wrapf(destroyErr, "failed to destroy batch-%d pipeline", batchSize))
		}
	}
	e.pipelinesBySize = nil

	if e.tokenizer != nil {
		if closeErr := e.tokenizer.Close(); closeErr != nil {
			err = goerrors.Join(err, closeErr)
		}
		e.tokenizer = nil
	}

	return err
}

// EmbedDocuments embeds the documents into 384-d unit vectors, one row per
// document, in input order.
func (e *Embedder) EmbedDocuments(documents []string) ([][]float32, error) {
	if e == nil {
		return nil, errors.New("embedder is nil")
	}
	if len(documents) == 0 {
		return [][]float32{}, nil
	}

	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.tokenizer == nil || e.pipelinesBySize == nil {
		return nil, errors.New("embedder has been closed")
	}

	pipeline, err := e.pipelineForBatchLocked(len(documents))
	if err != nil {
		return nil, err
	}

	if err := e.tokenizeInto(documents, pipeline.inputIDs, pipeline.attentionMask, pipeline.tokenTypeIDs); err != nil {
		return nil, err
	}

	if err := pipeline.binding.Run(nil); err != nil {
		return nil, errors.Wrap(err, "embedding inference failed")
	}

	return meanPoolAndNormalize(
		pipeline.outputTensor.GetData(),
		pipeline.attentionMask,
		len(documents),
		e.sequenceLength,
		OutputEmbeddingDimension,
	)
}

// EmbedQuery embeds a single query string.
func (e *Embedder) EmbedQuery(query string) ([]float32, error) {
	embeddings, err := e.EmbedDocuments([]string{query})
	if err != nil {
		return nil, err
	}
	if len(embeddings) != 1 {
		return nil, errors.Errorf("unexpected embedding row count: got %d, want 1", len(embeddings))
	}
	return embeddings[0], nil
}

func (e *Embedder) pipelineForBatchLocked(batchSize int) (*batchPipeline, error) {
	if pipeline, ok := e.pipelinesBySize[batchSize]; ok {
		return pipeline, nil
	}

	pipeline, err := newBatchPipeline(e.env, e.modelPath, e.cfg, e.sequenceLength, batchSize)
	if err != nil {
		return nil, err
	}
	e.pipelinesBySize[batchSize] = pipeline
	return pipeline, nil
}

func newBatchPipeline(env *ort.Environment, modelPath string, cfg config, sequenceLength, batchSize int) (p *batchPipeline, err error) {
	totalTokens := batchSize * sequenceLength
	p = &batchPipeline{
		inputIDs:      make([]int64, totalTokens),
		attentionMask: make([]int64, totalTokens),
		tokenTypeIDs:  make([]int64, totalTokens),
	}
	defer func() {
		if err != nil {
			_ = p.destroy()
			p = nil
		}
	}()

	shape := ort.NewShape(int64(batchSize), int64(sequenceLength))
	if p.inputIDsTensor, err = ort.NewTensor(env, shape, p.inputIDs); err != nil {
		return nil, errors.Wrap(err, "failed to create input_ids tensor")
	}
	if p.attentionMaskTensor, err = ort.NewTensor(env, shape, p.attentionMask); err != nil {
		return nil, errors.Wrap(err, "failed to create attention_mask tensor")
	}
	if p.tokenTypeIDsTensor, err = ort.NewTensor(env, shape, p.tokenTypeIDs); err != nil {
		return nil, errors.Wrap(err, "failed to create token_type_ids tensor")
	}

	outputShape := ort.NewShape(int64(batchSize), int64(sequenceLength), OutputEmbeddingDimension)
	if p.outputTensor, err = ort.NewEmptyTensor[float32](env, outputShape); err != nil {
		return nil, errors.Wrap(err, "failed to create output tensor")
	}

	if p.session, err = ort.NewSession(env, modelPath, nil); err != nil {
		return nil, errors.Wrap(err, "failed to create embedding session")
	}
	if p.binding, err = ort.NewIoBinding(p.session); err != nil {
		return nil, errors.Wrap(err, "failed to create io binding")
	}

	bindings := []struct {
		name   string
		tensor *ort.Tensor[int64]
	}{
		{cfg.inputIDsName, p.inputIDsTensor},
		{cfg.attentionMaskName, p.attentionMaskTensor},
		{cfg.tokenTypeIDsName, p.tokenTypeIDsTensor},
	}
	for _, b := range bindings {
		if err = p.binding.BindInput(b.name, b.tensor); err != nil {
			return nil, errors.Wrapf(err, "failed to bind input %q", b.name)
		}
	}
	if err = p.binding.BindOutput(cfg.outputName, p.outputTensor); err != nil {
		return nil, errors.Wrapf(err, "failed to bind output %q", cfg.outputName)
	}

	return p, nil
}

func (p *batchPipeline) destroy() error {
	if p == nil {
		return nil
	}

	err := ortutil.DestroyAll(
		p.binding,
		p.session,
		p.outputTensor,
		p.tokenTypeIDsTensor,
		p.attentionMaskTensor,
		p.inputIDsTensor,
	)

	p.inputIDs = nil
	p.attentionMask = nil
	p.tokenTypeIDs = nil
	p.binding = nil
	p.session = nil
	p.outputTensor = nil
	p.tokenTypeIDsTensor = nil
	p.attentionMaskTensor = nil
	p.inputIDsTensor = nil
	return err
}

func (e *Embedder) tokenizeInto(documents []string, inputIDs, attentionMask, tokenTypeIDs []int64) error {
	sequenceLength := e.sequenceLength
	totalTokens := len(documents) * sequenceLength
	if len(inputIDs) != totalTokens || len(attentionMask) != totalTokens || len(tokenTypeIDs) != totalTokens {
		return errors.Errorf(
			"token buffer length mismatch: got input_ids=%d attention_mask=%d token_type_ids=%d, want %d",
			len(inputIDs), len(attentionMask), len(tokenTypeIDs), totalTokens,
		)
	}

	clear(inputIDs)
	clear(attentionMask)
	clear(tokenTypeIDs)

	for i, document := range documents {
		encoding, err := e.tokenizer.Encode(
			document,
			tokenizers.WithAddSpecialTokens(),
			tokenizers.WithReturnAttentionMask(),
			tokenizers.WithReturnTypeIDs(),
		)
		if err != nil {
			return errors.Wrapf(err, "failed to tokenize document %d", i)
		}
		if encoding == nil {
			return errors.Errorf("failed to tokenize document %d: empty tokenizer result", i)
		}

		rowStart := i * sequenceLength
		rowEnd := rowStart + sequenceLength
		fillUint32AsInt64(inputIDs[rowStart:rowEnd], encoding.IDs)

		if len(encoding.AttentionMask) > 0 {
			fillUint32AsInt64(attentionMask[rowStart:rowEnd], encoding.AttentionMask)
		} else {
			deriveAttentionMask(attentionMask[rowStart:rowEnd], inputIDs[rowStart:rowEnd])
		}

		if len(encoding.TypeIDs) > 0 {
			fillUint32AsInt64(tokenTypeIDs[rowStart:rowEnd], encoding.TypeIDs)
		}
	}

	return nil
}

func fillUint32AsInt64(dst []int64, src []uint32) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = int64(src[i])
	}
}

// deriveAttentionMask marks non-padding positions for tokenizers that do not
// return a mask. Token id 0 is the BERT-family padding token.
func deriveAttentionMask(dst []int64, tokenIDs []int64) {
	for i := range dst {
		if tokenIDs[i] != 0 {
			dst[i] = 1
		}
	}
}

// meanPoolAndNormalize mean-pools token vectors under the attention mask and
// L2-normalizes each row, matching the sentence-transformers pipeline.
func meanPoolAndNormalize(lastHiddenState []float32, attentionMask []int64, batchSize, sequenceLength int, embeddingDim int64) ([][]float32, error) {
	if batchSize <= 0 {
		return nil, errors.Errorf("batch size must be > 0, got %d", batchSize)
	}
	if sequenceLength <= 0 {
		return nil, errors.Errorf("sequence length must be > 0, got %d", sequenceLength)
	}
	if embeddingDim <= 0 {
		return nil, errors.Errorf("embedding dim must be > 0, got %d", embeddingDim)
	}

	expectedMaskLen := batchSize * sequenceLength
	if len(attentionMask) != expectedMaskLen {
		return nil, errors.Errorf("attention mask length mismatch: got %d, want %d", len(attentionMask), expectedMaskLen)
	}
	expectedHiddenLen := expectedMaskLen * int(embeddingDim)
	if len(lastHiddenState) != expectedHiddenLen {
		return nil, errors.Errorf("last_hidden_state length mismatch: got %d, want %d", len(lastHiddenState), expectedHiddenLen)
	}

	dim := int(embeddingDim)
	embeddings := make([][]float32, batchSize)
	for row := 0; row < batchSize; row++ {
		embedding := make([]float32, dim)
		rowMaskOffset := row * sequenceLength

		denominator := float32(0)
		for tokenIndex := 0; tokenIndex < sequenceLength; tokenIndex++ {
			mask := attentionMask[rowMaskOffset+tokenIndex]
			if mask == 0 {
				continue
			}
			weight := float32(mask)
			denominator += weight

			hiddenOffset := (rowMaskOffset + tokenIndex) * dim
			for d := 0; d < dim; d++ {
				embedding[d] += lastHiddenState[hiddenOffset+d] * weight
			}
		}

		if denominator < poolingDenominatorEpsilon {
			denominator = poolingDenominatorEpsilon
		}
		invDenominator := float32(1.0) / denominator
		for d := 0; d < dim; d++ {
			embedding[d] *= invDenominator
		}

		normSquared := 0.0
		for _, value := range embedding {
			normSquared += float64(value * value)
		}
		norm := float32(math.Sqrt(normSquared))
		if norm < l2NormEpsilon {
			norm = l2NormEpsilon
		}
		invNorm := float32(1.0) / norm
		for d := 0; d < dim; d++ {
			embedding[d] *= invNorm
		}

		embeddings[row] = embedding
	}

	return embeddings, nil
}
