package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"shipping-gateway/internal/features/shipping/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDocumentSource is a mock implementation of ports.DocumentSource.
type MockDocumentSource struct {
	mock.Mock
}

func (m *MockDocumentSource) OpenInvoice(ctx context.Context, orderID string) (io.ReadCloser, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockDocumentSource) OpenLabel(ctx context.Context, shipmentID string) (io.ReadCloser, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockTransformer is a mock implementation of ports.Transformer.
type MockTransformer struct {
	mock.Mock
}

func (m *MockTransformer) Transform(ctx context.Context, pdf []byte, code string) ([]byte, error) {
	args := m.Called(ctx, pdf, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// recordingSink captures everything written to the response.
type recordingSink struct {
	headers  map[string]string
	sends    [][]byte
	streamed int64
	closed   bool
	streams  int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{headers: map[string]string{}}
}

func (s *recordingSink) SetHeader(k, v string) { s.headers[k] = v }

func (s *recordingSink) Send(b []byte) error {
	s.sends = append(s.sends, b)
	return nil
}

func (s *recordingSink) SendStream(body io.ReadCloser) error {
	s.streams++
	n, err := io.Copy(io.Discard, body)
	s.streamed = n
	s.closed = body.Close() == nil
	return err
}

type trackedBody struct {
	io.Reader
	closed bool
}

func (b *trackedBody) Close() error {
	b.closed = true
	return nil
}

func TestInvoiceService_StreamInvoice(t *testing.T) {
	docs := new(MockDocumentSource)
	tf := new(MockTransformer)
	body := &trackedBody{Reader: strings.NewReader("%PDF-original")}
	docs.On("OpenInvoice", mock.Anything, "55").Return(body, nil)
	tf.On("Transform", mock.Anything, []byte("%PDF-original"), "AWB1").Return([]byte("%PDF-stamped"), nil)

	sink := newRecordingSink()
	err := NewInvoiceService(docs, tf, 0).StreamInvoice(context.Background(), sink, "55", "AWB1", "")

	require.NoError(t, err)
	require.Len(t, sink.sends, 1)
	assert.Equal(t, "%PDF-stamped", string(sink.sends[0]))
	assert.Equal(t, "application/pdf", sink.headers["Content-Type"])
	assert.Equal(t, "no-store", sink.headers["Cache-Control"])
	assert.Equal(t, `inline; filename="invoice-55.pdf"`, sink.headers["Content-Disposition"])
	assert.True(t, body.closed)
}

func TestInvoiceService_StreamInvoice_UpstreamErrorLeavesSinkUntouched(t *testing.T) {
	docs := new(MockDocumentSource)
	docs.On("OpenInvoice", mock.Anything, "55").Return(nil, &domain.DocumentError{StatusCode: 500, Body: "boom"})

	sink := newRecordingSink()
	err := NewInvoiceService(docs, new(MockTransformer), 0).StreamInvoice(context.Background(), sink, "55", "AWB1", "x.pdf")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamDocument)
	assert.Equal(t, 500, domain.HTTPStatus(err))
	assert.Empty(t, sink.headers)
	assert.Empty(t, sink.sends)
}

func TestInvoiceService_StreamInvoice_EmptyBody(t *testing.T) {
	docs := new(MockDocumentSource)
	docs.On("OpenInvoice", mock.Anything, "55").Return(io.NopCloser(bytes.NewReader(nil)), nil)
	tf := new(MockTransformer)

	sink := newRecordingSink()
	err := NewInvoiceService(docs, tf, 0).StreamInvoice(context.Background(), sink, "55", "", "")

	assert.ErrorIs(t, err, domain.ErrMissingBody)
	assert.Empty(t, sink.headers)
	tf.AssertNotCalled(t, "Transform", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_StreamInvoice_TooLarge(t *testing.T) {
	docs := new(MockDocumentSource)
	docs.On("OpenInvoice", mock.Anything, "55").Return(io.NopCloser(strings.NewReader(strings.Repeat("x", 11))), nil)

	sink := newRecordingSink()
	err := NewInvoiceService(docs, new(MockTransformer), 10).StreamInvoice(context.Background(), sink, "55", "", "")

	assert.ErrorIs(t, err, domain.ErrUpstreamDocument)
	assert.Empty(t, sink.sends)
}

func TestInvoiceService_StreamInvoice_TransformError(t *testing.T) {
	docs := new(MockDocumentSource)
	tf := new(MockTransformer)
	docs.On("OpenInvoice", mock.Anything, "55").Return(io.NopCloser(strings.NewReader("%PDF")), nil)
	tf.On("Transform", mock.Anything, mock.Anything, "").Return(nil, errors.New("corrupt xref"))

	sink := newRecordingSink()
	err := NewInvoiceService(docs, tf, 0).StreamInvoice(context.Background(), sink, "55", "", "")

	assert.ErrorContains(t, err, "corrupt xref")
	assert.Empty(t, sink.headers)
	assert.Empty(t, sink.sends)
}

func TestInvoiceService_StreamInvoice_RequiresOrderID(t *testing.T) {
	docs := new(MockDocumentSource)
	err := NewInvoiceService(docs, new(MockTransformer), 0).StreamInvoice(context.Background(), newRecordingSink(), " ", "", "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	docs.AssertNotCalled(t, "OpenInvoice", mock.Anything, mock.Anything)
}

func TestInvoiceService_StreamLabel_LargeBodyIsStreamed(t *testing.T) {
	const size = 11 << 20
	docs := new(MockDocumentSource)
	body := &trackedBody{Reader: io.LimitReader(zeroReader{}, size)}
	docs.On("OpenLabel", mock.Anything, "66").Return(body, nil)

	sink := newRecordingSink()
	err := NewInvoiceService(docs, new(MockTransformer), 1024).StreamLabel(context.Background(), sink, "66", "shipping label")

	require.NoError(t, err)
	assert.Equal(t, 1, sink.streams)
	assert.Empty(t, sink.sends)
	assert.Equal(t, int64(size), sink.streamed)
	assert.True(t, body.closed)
	assert.Equal(t, `inline; filename="shipping label.pdf"`, sink.headers["Content-Disposition"])
}

func TestInvoiceService_StreamLabel_EmptyBody(t *testing.T) {
	docs := new(MockDocumentSource)
	body := &trackedBody{Reader: strings.NewReader("")}
	docs.On("OpenLabel", mock.Anything, "66").Return(body, nil)

	sink := newRecordingSink()
	err := NewInvoiceService(docs, new(MockTransformer), 0).StreamLabel(context.Background(), sink, "66", "")

	assert.ErrorIs(t, err, domain.ErrMissingBody)
	assert.True(t, body.closed)
	assert.Empty(t, sink.headers)
	assert.Zero(t, sink.streams)
}

func TestInvoiceService_StreamLabel_UpstreamError(t *testing.T) {
	docs := new(MockDocumentSource)
	docs.On("OpenLabel", mock.Anything, "66").Return(nil, &domain.DocumentError{StatusCode: 404})

	sink := newRecordingSink()
	err := NewInvoiceService(docs, new(MockTransformer), 0).StreamLabel(context.Background(), sink, "66", "")

	assert.Equal(t, 404, domain.HTTPStatus(err))
	assert.Empty(t, sink.headers)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name, in, fallback, want string
	}{
		{"plain", "invoice.pdf", "x", "invoice.pdf"},
		{"adds extension", "invoice", "x", "invoice.pdf"},
		{"keeps upper extension", "INVOICE.PDF", "x", "INVOICE.PDF"},
		{"strips quotes", `a"b.pdf`, "x", "ab.pdf"},
		{"strips header injection", "a\r\nSet-Cookie: x", "x", "aSet-Cookie: x.pdf"},
		{"flattens paths", "../../etc/passwd", "x", ".._.._etc_passwd.pdf"},
		{"falls back when empty", "  ", "invoice-55", "invoice-55.pdf"},
		{"falls back when only separators", "/", "label-66", "label-66.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in, tt.fallback))
		})
	}
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}
