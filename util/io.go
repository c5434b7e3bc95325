package util

import (
	"bytes"
	"encoding/binary"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/pkg/errors"
)

//*******************************************
// binary buffers
//*******************************************

func NewBufferReader(data []byte) BufferReader {
	reader := bytes.NewReader(data)
	return BufferReader{
		reader: reader,
	}
}

type BufferReader struct {
	reader *bytes.Reader
}

func Read[T any](reader BufferReader) T {
	var value T
	binary.Read(reader.reader, binary.LittleEndian, &value)
	return value
}

func ReadArray[T any](reader BufferReader) Array[T] {
	var size int32
	binary.Read(reader.reader, binary.LittleEndian, &size)
	value := NewArray[T](int(size))
	binary.Read(reader.reader, binary.LittleEndian, &value)
	return value
}

func ReadString(reader BufferReader) string {
	data := ReadArray[byte](reader)
	return string(data)
}

func NewBufferWriter() BufferWriter {
	buffer := bytes.Buffer{}
	return BufferWriter{
		buffer: &buffer,
	}
}

type BufferWriter struct {
	buffer *bytes.Buffer
}

func (self *BufferWriter) Bytes() []byte {
	return self.buffer.Bytes()
}

func Write[T any](writer BufferWriter, value T) {
	binary.Write(writer.buffer, binary.LittleEndian, value)
}
func WriteArray[T any](writer BufferWriter, value Array[T]) {
	binary.Write(writer.buffer, binary.LittleEndian, int32(value.Length()))
	binary.Write(writer.buffer, binary.LittleEndian, value)
}
func WriteString(writer BufferWriter, value string) {
	WriteArray(writer, Array[byte](value))
}

//*******************************************
// files
//*******************************************

func WriteBufferToFile(writer BufferWriter, file string) error {
	if err := os.WriteFile(file, writer.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %v", file)
	}
	return nil
}

func ReadBufferFromFile(file string) (BufferReader, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return BufferReader{}, errors.Wrapf(err, "failed to read %v", file)
	}
	return NewBufferReader(data), nil
}

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %v", file)
	}
	return nil
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	data, err := os.ReadFile(file)
	if err != nil {
		return value, errors.Wrapf(err, "failed to read %v", file)
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, errors.Wrapf(err, "invalid json in %v", file)
	}
	return value, nil
}

//*******************************************
// csv
//*******************************************

// Reads all rows of a csv file into structs of type T.
//
// Fields are matched to columns by their "csv" tag, rows with a wrong
// number of fields are skipped and empty values keep the zero value.
func ReadCSVFromFile[T any](filename string, delimiter rune) (List[T], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %v", filename)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "missing header in %v", filename)
	}
	name_row_mapping := NewDict[string, int](10)
	for i, name := range header {
		name_row_mapping[name] = i
	}

	var val T
	typ := reflect.TypeOf(val)
	num_field := typ.NumField()
	fields := NewList[Triple[int, int, reflect.Kind]](num_field)
	for i := 0; i < num_field; i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("csv")
		if tag == "" {
			continue
		}
		if !name_row_mapping.ContainsKey(tag) {
			continue
		}
		row := name_row_mapping[tag]
		switch field.Type.Kind() {
		case reflect.Bool:
			fields.Add(MakeTriple(i, row, reflect.Bool))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fields.Add(MakeTriple(i, row, reflect.Int))
		case reflect.Float32, reflect.Float64:
			fields.Add(MakeTriple(i, row, reflect.Float64))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			fields.Add(MakeTriple(i, row, reflect.Uint))
		case reflect.String:
			fields.Add(MakeTriple(i, row, reflect.String))
		}
	}

	rows := NewList[T](100)
	line := 1
	for {
		record, err := reader.Read()
		line += 1
		if err == io.EOF {
			break
		} else if errors.Is(err, csv.ErrFieldCount) {
			continue
		} else if err != nil {
			return nil, errors.Wrapf(err, "%v line %v", filename, line)
		}
		t := reflect.New(typ).Elem()
		for _, field := range fields {
			value := record[field.B]
			if value == "" {
				continue
			}
			f := t.Field(field.A)
			switch field.C {
			case reflect.Bool:
				num, err := strconv.ParseBool(value)
				if err != nil {
					return nil, errors.Wrapf(err, "%v line %v", filename, line)
				}
				f.SetBool(num)
			case reflect.Int:
				num, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return nil, errors.Wrapf(err, "%v line %v", filename, line)
				}
				f.SetInt(num)
			case reflect.Uint:
				num, err := strconv.ParseUint(value, 10, 64)
				if err != nil {
					return nil, errors.Wrapf(err, "%v line %v", filename, line)
				}
				f.SetUint(num)
			case reflect.Float64:
				num, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return nil, errors.Wrapf(err, "%v line %v", filename, line)
				}
				f.SetFloat(num)
			case reflect.String:
				f.SetString(value)
			}
		}
		rows.Add(t.Interface().(T))
	}
	return rows, nil
}
